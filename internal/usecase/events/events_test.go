package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discord-logger/internal/actor"
	"discord-logger/internal/domain/entity"
)

/*────────────────────  スタブ  ────────────────────*/

type fakeLookups struct {
	users     map[int64]*entity.User
	posts     map[int64]*entity.Post
	comments  map[int64]*entity.Comment
	plugins   map[string]*entity.Plugin
	orders    map[int64]*entity.Order
	products  map[int64]*entity.Product
	customers map[int64]*entity.Customer
	coupons   map[string]*entity.Coupon
	err       error // 強制エラー注入用
}

func get[K comparable, V any](m map[K]*V, k K, err error) (*V, error) {
	if err != nil {
		return nil, err
	}
	if v, ok := m[k]; ok {
		return v, nil
	}
	return nil, entity.ErrNotFound
}

func (f *fakeLookups) User(_ context.Context, id int64) (*entity.User, error) {
	return get(f.users, id, f.err)
}
func (f *fakeLookups) Post(_ context.Context, id int64) (*entity.Post, error) {
	return get(f.posts, id, f.err)
}
func (f *fakeLookups) Comment(_ context.Context, id int64) (*entity.Comment, error) {
	return get(f.comments, id, f.err)
}
func (f *fakeLookups) Plugin(_ context.Context, file string) (*entity.Plugin, error) {
	return get(f.plugins, file, f.err)
}
func (f *fakeLookups) Order(_ context.Context, id int64) (*entity.Order, error) {
	return get(f.orders, id, f.err)
}
func (f *fakeLookups) Product(_ context.Context, id int64) (*entity.Product, error) {
	return get(f.products, id, f.err)
}
func (f *fakeLookups) Customer(_ context.Context, id int64) (*entity.Customer, error) {
	return get(f.customers, id, f.err)
}
func (f *fakeLookups) Coupon(_ context.Context, code string) (*entity.Coupon, error) {
	return get(f.coupons, code, f.err)
}

func seeded() *fakeLookups {
	q := 4
	return &fakeLookups{
		users: map[int64]*entity.User{7: {ID: 7, Login: "alice", Email: "a@example.com"}},
		posts: map[int64]*entity.Post{
			10: {ID: 10, Type: "post", Title: "Hello", AuthorName: "Bob", Link: "https://blog.example/hello"},
			11: {ID: 11, Type: "page", Title: "About"},
			12: {ID: 12, Type: "product", Title: "Mug"},
		},
		comments:  map[int64]*entity.Comment{20: {ID: 20, PostID: 10, Author: "Carol", Content: "Nice"}},
		plugins:   map[string]*entity.Plugin{"akismet/akismet.php": {Name: "Akismet", Version: "5.3"}},
		orders:    map[int64]*entity.Order{30: {ID: 30, BillingFirstName: "Dana", BillingLastName: "Lee", FormattedTotal: "$12.00", Status: "processing"}},
		products:  map[int64]*entity.Product{12: {ID: 12, Name: "Mug", Price: "$9", StockStatus: "instock", StockQuantity: &q}},
		customers: map[int64]*entity.Customer{40: {ID: 40, FirstName: "Eve", LastName: "Ng", Email: "eve@example.com"}},
		coupons:   map[string]*entity.Coupon{"SPRING": {Code: "SPRING", Amount: "10", DiscountType: "percent"}},
	}
}

type fakeSettings struct {
	cfg entity.DeliveryConfig
	err error
}

func (f fakeSettings) Load(context.Context) (entity.DeliveryConfig, error) { return f.cfg, f.err }

type fakeEngine struct {
	calls   []entity.Message
	actor   *int64
	outcome entity.Outcome
}

func (f *fakeEngine) Deliver(ctx context.Context, msg entity.Message, _ entity.DeliveryConfig) entity.Outcome {
	f.calls = append(f.calls, msg)
	f.actor = actor.FromContext(ctx)
	if f.outcome.Kind == "" {
		return entity.Outcome{Kind: entity.OutcomeSuccess}
	}
	return f.outcome
}

func newDispatcher(l Lookups, eng *fakeEngine, opts ...DispatcherOption) *Dispatcher {
	return NewDispatcher(DefaultRegistry(), l, fakeSettings{}, eng, opts...)
}

var now = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

/*────────────────────  テスト  ────────────────────*/

func TestDefaultRegistry_CoversAllTypes(t *testing.T) {
	r := DefaultRegistry()
	assert.Len(t, r.Types(), len(entity.AllEventTypes))
	for _, et := range entity.AllEventTypes {
		_, ok := r.Lookup(et)
		assert.True(t, ok, et)
	}
}

func TestNewRegistry_RejectsUnknownTag(t *testing.T) {
	_, err := NewRegistry(map[entity.EventType]Adapter{"wiki_edited": {Extract: extractTheme}})
	assert.ErrorIs(t, err, entity.ErrUnknownEventType)

	_, err = NewRegistry(map[entity.EventType]Adapter{entity.EventThemeSwitched: {}})
	assert.Error(t, err)
}

func TestDispatch_UnknownType(t *testing.T) {
	eng := &fakeEngine{}
	_, err := newDispatcher(seeded(), eng).Dispatch(context.Background(), entity.RawEvent{Type: "wiki_edited"})
	assert.ErrorIs(t, err, entity.ErrUnknownEventType)
	assert.Empty(t, eng.calls)
}

func TestDispatch_Delivers(t *testing.T) {
	eng := &fakeEngine{}
	actorID := int64(7)
	res, err := newDispatcher(seeded(), eng).Dispatch(context.Background(), entity.RawEvent{
		Type: entity.EventUserRegistered, ObjectID: 7, ActorID: &actorID, OccurredAt: now,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, res.Status)
	require.Len(t, eng.calls, 1)
	assert.Equal(t, "👤 New User Registration", eng.calls[0].Title)
	assert.Equal(t, "alice", eng.calls[0].Fields()[0].Value)
	assert.Equal(t, "2024-06-01 09:00:00", eng.calls[0].Fields()[2].Value)
	require.NotNil(t, eng.actor)
	assert.Equal(t, int64(7), *eng.actor)
}

func TestDispatch_FailedOutcome(t *testing.T) {
	eng := &fakeEngine{outcome: entity.Outcome{Kind: entity.OutcomeNotConfigured}}
	res, err := newDispatcher(seeded(), eng).Dispatch(context.Background(), entity.RawEvent{
		Type: entity.EventThemeSwitched, Attrs: map[string]string{AttrTheme: "Twenty"},
	})
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, "not-configured", res.Reason)
	require.NotNil(t, res.Outcome)
}

func TestDispatch_PostTypeFilter(t *testing.T) {
	eng := &fakeEngine{}
	d := newDispatcher(seeded(), eng)

	res, err := d.Dispatch(context.Background(), entity.RawEvent{Type: entity.EventPostPublished, ObjectID: 11})
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, res.Status)

	res, err = d.Dispatch(context.Background(), entity.RawEvent{Type: entity.EventProductTrashed, ObjectID: 10})
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, res.Status)

	res, err = d.Dispatch(context.Background(), entity.RawEvent{
		Type: entity.EventProductTrashed, ObjectID: 12, Attrs: map[string]string{AttrPostType: "page"},
	})
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, res.Status)
	assert.Empty(t, eng.calls)

	res, err = d.Dispatch(context.Background(), entity.RawEvent{Type: entity.EventProductTrashed, ObjectID: 12})
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, res.Status)
	assert.Len(t, eng.calls, 1)
}

func TestDispatch_MissingEntityIsSkipped(t *testing.T) {
	eng := &fakeEngine{}
	res, err := newDispatcher(seeded(), eng).Dispatch(context.Background(), entity.RawEvent{Type: entity.EventOrderCreated, ObjectID: 999})
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, res.Status)
	assert.Empty(t, eng.calls)
}

func TestDispatch_DeletedPostUsesSnapshot(t *testing.T) {
	eng := &fakeEngine{}
	res, err := newDispatcher(seeded(), eng).Dispatch(context.Background(), entity.RawEvent{
		Type: entity.EventPostDeleted, ObjectID: 99,
		Attrs: map[string]string{AttrTitle: "Gone", AttrAuthor: "Bob", AttrPostType: "post"},
	})
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, res.Status)
	assert.Equal(t, "Gone", eng.calls[0].Fields()[0].Value)
}

func TestDispatch_LookupFailure(t *testing.T) {
	l := seeded()
	l.err = errors.New("platform unavailable")
	eng := &fakeEngine{}
	res, err := newDispatcher(l, eng).Dispatch(context.Background(), entity.RawEvent{Type: entity.EventOrderCreated, ObjectID: 30})
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, res.Status)
	assert.Empty(t, eng.calls)
}

func TestDispatch_SettingsFailure(t *testing.T) {
	eng := &fakeEngine{}
	d := NewDispatcher(DefaultRegistry(), seeded(), fakeSettings{err: errors.New("db down")}, eng)
	res, err := d.Dispatch(context.Background(), entity.RawEvent{Type: entity.EventCartItemRemoved})
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, res.Status)
	assert.Empty(t, eng.calls)
}

func TestDispatch_Disabled(t *testing.T) {
	eng := &fakeEngine{}
	d := newDispatcher(seeded(), eng, WithEnabled(entity.EventUserLogin))

	assert.True(t, d.Enabled(entity.EventUserLogin))
	assert.False(t, d.Enabled(entity.EventThemeSwitched))

	res, err := d.Dispatch(context.Background(), entity.RawEvent{Type: entity.EventThemeSwitched})
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, res.Status)
	assert.Empty(t, eng.calls)
}

func TestExtractors(t *testing.T) {
	ctx := context.Background()
	l := seeded()

	p, err := extractUser(ctx, l, entity.RawEvent{ObjectID: 99, Attrs: map[string]string{AttrUsername: "bob"}, IP: "1.2.3.4"})
	require.NoError(t, err)
	assert.Equal(t, entity.UserPayload{Username: "bob", IP: "1.2.3.4"}, p)

	_, err = extractUser(ctx, l, entity.RawEvent{})
	assert.ErrorIs(t, err, ErrUnresolved)

	p, err = extractComment(ctx, l, entity.RawEvent{ObjectID: 20, Attrs: map[string]string{AttrStatus: "approve"}})
	require.NoError(t, err)
	assert.Equal(t, entity.CommentPayload{Author: "Carol", PostTitle: "Hello", Content: "Nice", Status: "approve"}, p)

	p, err = extractOrder(ctx, l, entity.RawEvent{ObjectID: 30, Attrs: map[string]string{AttrOldStatus: "pending", AttrNewStatus: "processing"}})
	require.NoError(t, err)
	op := p.(entity.OrderPayload)
	assert.Equal(t, "Dana Lee", op.Customer)
	assert.Equal(t, "pending", op.OldStatus)

	p, err = extractCartAdd(ctx, l, entity.RawEvent{ObjectID: 12, Attrs: map[string]string{AttrQuantity: "3"}})
	require.NoError(t, err)
	assert.Equal(t, 3, p.(entity.CartPayload).Quantity)

	p, err = extractPlugin(ctx, l, entity.RawEvent{Attrs: map[string]string{AttrPlugin: "akismet/akismet.php"}})
	require.NoError(t, err)
	assert.Equal(t, entity.PluginPayload{Name: "Akismet", Version: "5.3"}, p)

	_, err = extractCoupon(ctx, l, entity.RawEvent{})
	assert.ErrorIs(t, err, ErrUnresolved)

	p, err = extractCustomer(ctx, l, entity.RawEvent{ObjectID: 40, OccurredAt: now})
	require.NoError(t, err)
	assert.Equal(t, "Eve Ng", p.(entity.CustomerPayload).FullName())
}
