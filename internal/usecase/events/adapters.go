package events

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"discord-logger/internal/domain/entity"
)

// Hook argument keys sent in RawEvent.Attrs.
const (
	AttrUsername  = "username"
	AttrEmail     = "email"
	AttrStatus    = "status"
	AttrOldStatus = "old_status"
	AttrNewStatus = "new_status"
	AttrTheme     = "theme"
	AttrVersion   = "version"
	AttrMessage   = "message"
	AttrQuantity  = "quantity"
	AttrPlugin    = "plugin"
	AttrCode      = "code"
	AttrTitle     = "title"
	AttrAuthor    = "author"
	AttrPostType  = "post_type"
)

type extractFunc = func(ctx context.Context, l Lookups, raw entity.RawEvent) (entity.Payload, error)

func defaultAdapters() map[entity.EventType]Adapter {
	m := map[entity.EventType]extractFunc{
		entity.EventUserRegistered: extractUser,
		entity.EventUserLogin:      extractUser,
		entity.EventUserLogout:     extractUser,
		entity.EventLoginFailed:    extractLoginFailed,
		entity.EventProfileUpdated: extractUser,
		entity.EventUserDeleted:    extractUser,

		entity.EventPostPublished:        extractPost,
		entity.EventPostTrashed:          extractPost,
		entity.EventPostRestored:         extractPost,
		entity.EventPostDeleted:          extractPost,
		entity.EventCommentPosted:        extractComment,
		entity.EventCommentStatusChanged: extractComment,
		entity.EventCommentDeleted:       extractComment,

		entity.EventPluginActivated:   extractPlugin,
		entity.EventPluginDeactivated: extractPlugin,
		entity.EventThemeSwitched:     extractTheme,
		entity.EventCoreUpdated:       extractCoreUpdate,
		entity.EventPlatformError:     extractError,

		entity.EventOrderCreated:           extractOrder,
		entity.EventOrderStatusChanged:     extractOrder,
		entity.EventPaymentCompleted:       extractOrder,
		entity.EventOrderRefunded:          extractOrder,
		entity.EventProductCreated:         extractProduct,
		entity.EventProductUpdated:         extractProduct,
		entity.EventProductTrashed:         extractTrashedProduct,
		entity.EventStockChanged:           extractProduct,
		entity.EventCustomerCreated:        extractCustomer,
		entity.EventCustomerAddressUpdated: extractCustomer,
		entity.EventCartItemAdded:          extractCartAdd,
		entity.EventCartItemRemoved:        extractCartRemove,
		entity.EventCouponApplied:          extractCoupon,
	}
	out := make(map[entity.EventType]Adapter, len(m))
	for t, fn := range m {
		out[t] = Adapter{Extract: fn}
	}
	return out
}

// unresolved maps a missing record onto ErrUnresolved and wraps the rest.
func unresolved(what string, err error) error {
	if errors.Is(err, entity.ErrNotFound) {
		return fmt.Errorf("%s: %w", what, ErrUnresolved)
	}
	return fmt.Errorf("lookup %s: %w", what, err)
}

/* ──── identity ──── */

// extractUser prefers the username sent with the hook (login passes it
// directly, delete may fire after the account is gone) and falls back to a
// lookup by id.
func extractUser(ctx context.Context, l Lookups, raw entity.RawEvent) (entity.Payload, error) {
	p := entity.UserPayload{
		Username:   raw.Attr(AttrUsername),
		Email:      raw.Attr(AttrEmail),
		IP:         raw.IP,
		OccurredAt: raw.OccurredAt,
	}
	if p.Username != "" {
		return p, nil
	}
	if raw.ObjectID == 0 {
		return nil, fmt.Errorf("user: no id: %w", ErrUnresolved)
	}
	u, err := l.User(ctx, raw.ObjectID)
	if err != nil {
		return nil, unresolved("user", err)
	}
	p.Username, p.Email = u.Login, u.Email
	return p, nil
}

func extractLoginFailed(_ context.Context, _ Lookups, raw entity.RawEvent) (entity.Payload, error) {
	return entity.UserPayload{
		Username:   raw.Attr(AttrUsername),
		IP:         raw.IP,
		OccurredAt: raw.OccurredAt,
	}, nil
}

/* ──── content ──── */

// extractPost only accepts regular posts; pages, products and other custom
// types are skipped.
func extractPost(ctx context.Context, l Lookups, raw entity.RawEvent) (entity.Payload, error) {
	post, err := l.Post(ctx, raw.ObjectID)
	switch {
	case err == nil:
	case errors.Is(err, entity.ErrNotFound) && raw.Attr(AttrTitle) != "":
		// permanently deleted before the lookup ran
		post = &entity.Post{
			Type:       raw.Attr(AttrPostType),
			Title:      raw.Attr(AttrTitle),
			AuthorName: raw.Attr(AttrAuthor),
		}
	default:
		return nil, unresolved("post", err)
	}
	if post.Type != entity.PostTypePost {
		return nil, fmt.Errorf("post type %q: %w", post.Type, ErrUnresolved)
	}
	return entity.PostPayload{Title: post.Title, Author: post.AuthorName, URL: post.Link}, nil
}

func extractComment(ctx context.Context, l Lookups, raw entity.RawEvent) (entity.Payload, error) {
	c, err := l.Comment(ctx, raw.ObjectID)
	if err != nil {
		return nil, unresolved("comment", err)
	}
	p := entity.CommentPayload{Author: c.Author, Content: c.Content, Status: raw.Attr(AttrStatus)}
	if c.PostID != 0 {
		post, err := l.Post(ctx, c.PostID)
		switch {
		case err == nil:
			p.PostTitle = post.Title
		case !errors.Is(err, entity.ErrNotFound):
			return nil, unresolved("comment post", err)
		}
	}
	return p, nil
}

/* ──── site ──── */

func extractPlugin(ctx context.Context, l Lookups, raw entity.RawEvent) (entity.Payload, error) {
	file := raw.Attr(AttrPlugin)
	if file == "" {
		return nil, fmt.Errorf("plugin: no file: %w", ErrUnresolved)
	}
	pl, err := l.Plugin(ctx, file)
	if err != nil {
		return nil, unresolved("plugin", err)
	}
	return entity.PluginPayload{Name: pl.Name, Version: pl.Version}, nil
}

func extractTheme(_ context.Context, _ Lookups, raw entity.RawEvent) (entity.Payload, error) {
	return entity.ThemePayload{Name: raw.Attr(AttrTheme), OccurredAt: raw.OccurredAt}, nil
}

func extractCoreUpdate(_ context.Context, _ Lookups, raw entity.RawEvent) (entity.Payload, error) {
	return entity.CoreUpdatePayload{Version: raw.Attr(AttrVersion), OccurredAt: raw.OccurredAt}, nil
}

func extractError(_ context.Context, _ Lookups, raw entity.RawEvent) (entity.Payload, error) {
	return entity.ErrorPayload{Message: raw.Attr(AttrMessage), IP: raw.IP, OccurredAt: raw.OccurredAt}, nil
}

/* ──── commerce ──── */

func extractOrder(ctx context.Context, l Lookups, raw entity.RawEvent) (entity.Payload, error) {
	o, err := l.Order(ctx, raw.ObjectID)
	if err != nil {
		return nil, unresolved("order", err)
	}
	return entity.OrderPayload{
		OrderID:       o.ID,
		Customer:      o.Customer(),
		Total:         o.FormattedTotal,
		Status:        o.Status,
		OldStatus:     raw.Attr(AttrOldStatus),
		NewStatus:     raw.Attr(AttrNewStatus),
		PaymentMethod: o.PaymentMethodTitle,
		ItemCount:     o.ItemCount,
	}, nil
}

func productPayload(p *entity.Product) entity.ProductPayload {
	return entity.ProductPayload{
		Name:          p.Name,
		Price:         p.Price,
		SKU:           p.SKU,
		StockStatus:   p.StockStatus,
		StockQuantity: p.StockQuantity,
	}
}

func extractProduct(ctx context.Context, l Lookups, raw entity.RawEvent) (entity.Payload, error) {
	p, err := l.Product(ctx, raw.ObjectID)
	if err != nil {
		return nil, unresolved("product", err)
	}
	return productPayload(p), nil
}

// extractTrashedProduct fires for every trashed post; only products pass.
// The bridge may send the post type, otherwise the product lookup decides.
func extractTrashedProduct(ctx context.Context, l Lookups, raw entity.RawEvent) (entity.Payload, error) {
	if pt := raw.Attr(AttrPostType); pt != "" && pt != entity.PostTypeProduct {
		return nil, fmt.Errorf("post type %q: %w", pt, ErrUnresolved)
	}
	return extractProduct(ctx, l, raw)
}

func extractCustomer(ctx context.Context, l Lookups, raw entity.RawEvent) (entity.Payload, error) {
	c, err := l.Customer(ctx, raw.ObjectID)
	if err != nil {
		return nil, unresolved("customer", err)
	}
	return entity.CustomerPayload{
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Email:      c.Email,
		OccurredAt: raw.OccurredAt,
	}, nil
}

func extractCartAdd(ctx context.Context, l Lookups, raw entity.RawEvent) (entity.Payload, error) {
	p, err := l.Product(ctx, raw.ObjectID)
	if err != nil {
		return nil, unresolved("product", err)
	}
	qty, _ := strconv.Atoi(raw.Attr(AttrQuantity))
	return entity.CartPayload{Product: p.Name, Quantity: qty, Price: p.Price, OccurredAt: raw.OccurredAt}, nil
}

func extractCartRemove(_ context.Context, _ Lookups, raw entity.RawEvent) (entity.Payload, error) {
	return entity.CartPayload{OccurredAt: raw.OccurredAt}, nil
}

func extractCoupon(ctx context.Context, l Lookups, raw entity.RawEvent) (entity.Payload, error) {
	code := raw.Attr(AttrCode)
	if code == "" {
		return nil, fmt.Errorf("coupon: no code: %w", ErrUnresolved)
	}
	c, err := l.Coupon(ctx, code)
	if err != nil {
		return nil, unresolved("coupon", err)
	}
	return entity.CouponPayload{
		Code:         c.Code,
		Amount:       c.Amount,
		DiscountType: c.DiscountType,
		OccurredAt:   raw.OccurredAt,
	}, nil
}
