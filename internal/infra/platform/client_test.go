package platform

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discord-logger/internal/domain/entity"
	"discord-logger/internal/usecase/events"
)

var _ events.Lookups = (*Client)(nil)

/* ──── ヘルパ ──── */

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL + "/", User: "relay", AppPassword: "app pass"}, srv.Client())
	require.NoError(t, err)
	c.retryConfig.InitialDelay = time.Millisecond
	c.retryConfig.MaxDelay = time.Millisecond
	return c
}

func jsonBody(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

/* ──── テスト ──── */

func TestNew_RejectsBadBaseURL(t *testing.T) {
	_, err := New(Config{BaseURL: "not a url"}, nil)
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestUser_BasicAuthAndEditContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wp/v2/users/7", r.URL.Path)
		assert.Equal(t, "edit", r.URL.Query().Get("context"))
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "relay", user)
		assert.Equal(t, "app pass", pass)
		jsonBody(w, `{"id":7,"username":"alice","email":"a@example.com"}`)
	})

	u, err := c.User(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, &entity.User{ID: 7, Login: "alice", Email: "a@example.com"}, u)
}

func TestPost_EmbeddedAuthor(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "author", r.URL.Query().Get("_embed"))
		jsonBody(w, `{"id":10,"type":"post","title":{"raw":"Hello","rendered":"Hello"},
			"link":"https://blog.example/hello","_embedded":{"author":[{"name":"Bob"}]}}`)
	})

	p, err := c.Post(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, &entity.Post{ID: 10, Type: "post", Title: "Hello", AuthorName: "Bob", Link: "https://blog.example/hello"}, p)
}

func TestNotFound(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, `{"code":"rest_post_invalid_id"}`, http.StatusNotFound)
	})

	_, err := c.Post(context.Background(), 99)
	assert.ErrorIs(t, err, entity.ErrNotFound)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "404 is not retried")
}

func TestServerErrorIsRetried(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		jsonBody(w, `{"id":40,"first_name":"Eve","last_name":"Ng","email":"eve@example.com"}`)
	})

	cu, err := c.Customer(context.Background(), 40)
	require.NoError(t, err)
	assert.Equal(t, "Eve", cu.FirstName)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestUnauthorizedFails(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.Order(context.Background(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, entity.ErrNotFound)
}

func TestOrder(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wc/v3/orders/30", r.URL.Path)
		jsonBody(w, `{"id":30,"status":"processing","total":"12.00","currency_symbol":"$",
			"payment_method_title":"Card","billing":{"first_name":"Dana","last_name":"Lee"},
			"line_items":[{"quantity":2},{"quantity":1}]}`)
	})

	o, err := c.Order(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, "$12.00", o.FormattedTotal)
	assert.Equal(t, 3, o.ItemCount)
	assert.Equal(t, "Dana Lee", o.Customer())
}

func TestProduct_NullStock(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		jsonBody(w, `{"id":12,"name":"Mug","price":"9","sku":"","stock_status":"instock","stock_quantity":null}`)
	})

	p, err := c.Product(context.Background(), 12)
	require.NoError(t, err)
	assert.Nil(t, p.StockQuantity)
	assert.Equal(t, "Mug", p.Name)
}

func TestPlugin_StripsSuffix(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wp/v2/plugins/akismet/akismet", r.URL.Path)
		jsonBody(w, `{"plugin":"akismet/akismet","name":"Akismet","version":"5.3"}`)
	})

	p, err := c.Plugin(context.Background(), "akismet/akismet.php")
	require.NoError(t, err)
	assert.Equal(t, &entity.Plugin{File: "akismet/akismet.php", Name: "Akismet", Version: "5.3"}, p)
}

func TestCoupon(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("code") == "SPRING" {
			jsonBody(w, `[{"id":1,"code":"spring","amount":"10.00","discount_type":"percent"}]`)
			return
		}
		jsonBody(w, `[]`)
	})

	cp, err := c.Coupon(context.Background(), "SPRING")
	require.NoError(t, err)
	assert.Equal(t, "percent", cp.DiscountType)

	_, err = c.Coupon(context.Background(), "NOPE")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestComment(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		jsonBody(w, `{"id":20,"post":10,"author_name":"Carol","content":{"rendered":"<p>Nice</p>"}}`)
	})

	cm, err := c.Comment(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, int64(10), cm.PostID)
	assert.Equal(t, "<p>Nice</p>", cm.Content)
}
