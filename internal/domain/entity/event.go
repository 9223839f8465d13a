package entity

import "time"

// EventType is the tag of a platform lifecycle event.
type EventType string

// Identity events.
const (
	EventUserRegistered EventType = "user_registered"
	EventUserLogin      EventType = "user_login"
	EventUserLogout     EventType = "user_logout"
	EventLoginFailed    EventType = "login_failed"
	EventProfileUpdated EventType = "profile_updated"
	EventUserDeleted    EventType = "user_deleted"
)

// Content events.
const (
	EventPostPublished        EventType = "post_published"
	EventPostTrashed          EventType = "post_trashed"
	EventPostRestored         EventType = "post_restored"
	EventPostDeleted          EventType = "post_deleted"
	EventCommentPosted        EventType = "comment_posted"
	EventCommentStatusChanged EventType = "comment_status_changed"
	EventCommentDeleted       EventType = "comment_deleted"
)

// Site events (installed components and core).
const (
	EventPluginActivated   EventType = "plugin_activated"
	EventPluginDeactivated EventType = "plugin_deactivated"
	EventThemeSwitched     EventType = "theme_switched"
	EventCoreUpdated       EventType = "core_updated"
	EventPlatformError     EventType = "platform_error"
)

// Commerce events.
const (
	EventOrderCreated           EventType = "order_created"
	EventOrderStatusChanged     EventType = "order_status_changed"
	EventPaymentCompleted       EventType = "payment_completed"
	EventOrderRefunded          EventType = "order_refunded"
	EventProductCreated         EventType = "product_created"
	EventProductUpdated         EventType = "product_updated"
	EventProductTrashed         EventType = "product_trashed"
	EventCustomerCreated        EventType = "customer_created"
	EventCustomerAddressUpdated EventType = "customer_address_updated"
	EventCartItemAdded          EventType = "cart_item_added"
	EventCartItemRemoved        EventType = "cart_item_removed"
	EventCouponApplied          EventType = "coupon_applied"
	EventStockChanged           EventType = "stock_changed"
)

// AllEventTypes lists every supported tag in a stable order.
var AllEventTypes = []EventType{
	EventUserRegistered, EventUserLogin, EventUserLogout, EventLoginFailed,
	EventProfileUpdated, EventUserDeleted,
	EventPostPublished, EventPostTrashed, EventPostRestored, EventPostDeleted,
	EventCommentPosted, EventCommentStatusChanged, EventCommentDeleted,
	EventPluginActivated, EventPluginDeactivated, EventThemeSwitched,
	EventCoreUpdated, EventPlatformError,
	EventOrderCreated, EventOrderStatusChanged, EventPaymentCompleted,
	EventOrderRefunded, EventProductCreated, EventProductUpdated,
	EventProductTrashed, EventCustomerCreated, EventCustomerAddressUpdated,
	EventCartItemAdded, EventCartItemRemoved, EventCouponApplied,
	EventStockChanged,
}

// IsCommerce reports whether the event comes from the e-commerce extension.
func (t EventType) IsCommerce() bool {
	switch t {
	case EventOrderCreated, EventOrderStatusChanged, EventPaymentCompleted,
		EventOrderRefunded, EventProductCreated, EventProductUpdated,
		EventProductTrashed, EventCustomerCreated, EventCustomerAddressUpdated,
		EventCartItemAdded, EventCartItemRemoved, EventCouponApplied,
		EventStockChanged:
		return true
	}
	return false
}

// RawEvent is what the platform hook bridge posts when a hook fires.
// It carries identifiers only; display data is resolved by the adapters.
type RawEvent struct {
	Type       EventType         `json:"type"`
	ObjectID   int64             `json:"object_id,omitempty"`
	ActorID    *int64            `json:"actor_id,omitempty"`
	IP         string            `json:"ip,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
	Attrs      map[string]string `json:"attrs,omitempty"`
}

// Attr returns a hook argument, or "" when it was not sent.
func (e RawEvent) Attr(key string) string {
	if e.Attrs == nil {
		return ""
	}
	return e.Attrs[key]
}
