package entity

import "time"

// Payload is the resolved display data of one event, consumed by the formatter.
type Payload interface {
	eventPayload()
}

// UserPayload backs the identity events.
type UserPayload struct {
	Username   string
	Email      string
	IP         string
	OccurredAt time.Time
}

// PostPayload backs the post lifecycle events.
type PostPayload struct {
	Title  string
	Author string
	URL    string
}

// CommentPayload backs the comment events.
type CommentPayload struct {
	Author    string
	PostTitle string
	Content   string
	Status    string
}

// PluginPayload backs plugin activation and deactivation.
type PluginPayload struct {
	Name    string
	Version string
}

// ThemePayload backs theme switches.
type ThemePayload struct {
	Name       string
	OccurredAt time.Time
}

// CoreUpdatePayload backs core updates.
type CoreUpdatePayload struct {
	Version    string
	OccurredAt time.Time
}

// ErrorPayload backs fatal platform errors.
type ErrorPayload struct {
	Message    string
	IP         string
	OccurredAt time.Time
}

// OrderPayload backs the order and payment events.
type OrderPayload struct {
	OrderID       int64
	Customer      string
	Total         string
	Status        string
	OldStatus     string
	NewStatus     string
	PaymentMethod string
	ItemCount     int
}

// ProductPayload backs product and stock events.
type ProductPayload struct {
	Name          string
	Price         string
	SKU           string
	StockStatus   string
	StockQuantity *int
}

// CustomerPayload backs customer events.
type CustomerPayload struct {
	FirstName  string
	LastName   string
	Email      string
	OccurredAt time.Time
}

// FullName joins first and last name the way the billing screen shows it.
func (c CustomerPayload) FullName() string {
	return c.FirstName + " " + c.LastName
}

// CartPayload backs cart events.
type CartPayload struct {
	Product    string
	Quantity   int
	Price      string
	OccurredAt time.Time
}

// CouponPayload backs coupon usage.
type CouponPayload struct {
	Code         string
	Amount       string
	DiscountType string
	OccurredAt   time.Time
}

func (UserPayload) eventPayload()       {}
func (PostPayload) eventPayload()       {}
func (CommentPayload) eventPayload()    {}
func (PluginPayload) eventPayload()     {}
func (ThemePayload) eventPayload()      {}
func (CoreUpdatePayload) eventPayload() {}
func (ErrorPayload) eventPayload()      {}
func (OrderPayload) eventPayload()      {}
func (ProductPayload) eventPayload()    {}
func (CustomerPayload) eventPayload()   {}
func (CartPayload) eventPayload()       {}
func (CouponPayload) eventPayload()     {}
