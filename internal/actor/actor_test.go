package actor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))

	ctx := WithID(context.Background(), 42)
	got := FromContext(ctx)
	require.NotNil(t, got)
	assert.Equal(t, int64(42), *got)
}
