package entity

// Platform records returned by the read-only lookups. They carry only the
// attributes the message templates display.

// PostTypePost and PostTypeProduct are the post types the content and
// product-trash events accept.
const (
	PostTypePost    = "post"
	PostTypeProduct = "product"
)

// User is a platform account.
type User struct {
	ID    int64
	Login string
	Email string
}

// Post is a content item of any post type.
type Post struct {
	ID         int64
	Type       string
	Title      string
	AuthorName string
	Link       string
}

// Comment is a reader comment on a post.
type Comment struct {
	ID      int64
	PostID  int64
	Author  string
	Content string
}

// Plugin is an installed extension identified by its plugin file.
type Plugin struct {
	File    string
	Name    string
	Version string
}

// Order is a commerce order.
type Order struct {
	ID                 int64
	BillingFirstName   string
	BillingLastName    string
	FormattedTotal     string
	Status             string
	PaymentMethodTitle string
	ItemCount          int
}

// Customer returns the billing name shown on order templates.
func (o Order) Customer() string {
	return o.BillingFirstName + " " + o.BillingLastName
}

// Product is a commerce product.
type Product struct {
	ID            int64
	Name          string
	Price         string
	SKU           string
	StockStatus   string
	StockQuantity *int
}

// Customer is a commerce customer account.
type Customer struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
}

// Coupon is a commerce discount code.
type Coupon struct {
	ID           int64
	Code         string
	Amount       string
	DiscountType string
}
