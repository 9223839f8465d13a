package events

import (
	"context"

	"discord-logger/internal/domain/entity"
)

// Read-only lookups. Implementations return entity.ErrNotFound for missing
// records.

type UserLookup interface {
	User(ctx context.Context, id int64) (*entity.User, error)
}

type PostLookup interface {
	Post(ctx context.Context, id int64) (*entity.Post, error)
}

type CommentLookup interface {
	Comment(ctx context.Context, id int64) (*entity.Comment, error)
}

type PluginLookup interface {
	Plugin(ctx context.Context, file string) (*entity.Plugin, error)
}

type OrderLookup interface {
	Order(ctx context.Context, id int64) (*entity.Order, error)
}

type ProductLookup interface {
	Product(ctx context.Context, id int64) (*entity.Product, error)
}

type CustomerLookup interface {
	Customer(ctx context.Context, id int64) (*entity.Customer, error)
}

type CouponLookup interface {
	Coupon(ctx context.Context, code string) (*entity.Coupon, error)
}

// Lookups is the full set used by the default adapters.
type Lookups interface {
	UserLookup
	PostLookup
	CommentLookup
	PluginLookup
	OrderLookup
	ProductLookup
	CustomerLookup
	CouponLookup
}
