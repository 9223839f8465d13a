package platform

import (
	"context"
	"net/url"
	"strings"

	"discord-logger/internal/domain/entity"
)

/* ──── wp/v2 ──── */

type rendered struct {
	Raw      string `json:"raw"`
	Rendered string `json:"rendered"`
}

func (r rendered) text() string {
	if r.Raw != "" {
		return r.Raw
	}
	return r.Rendered
}

var editContext = url.Values{"context": {"edit"}}

func (c *Client) User(ctx context.Context, id int64) (*entity.User, error) {
	var body struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
		Slug     string `json:"slug"`
		Email    string `json:"email"`
	}
	if err := c.getJSON(ctx, "user", idPath("/wp/v2/users", id), editContext, &body); err != nil {
		return nil, err
	}
	login := body.Username
	if login == "" {
		login = body.Slug
	}
	return &entity.User{ID: body.ID, Login: login, Email: body.Email}, nil
}

func (c *Client) Post(ctx context.Context, id int64) (*entity.Post, error) {
	var body struct {
		ID       int64    `json:"id"`
		Type     string   `json:"type"`
		Title    rendered `json:"title"`
		Link     string   `json:"link"`
		Embedded struct {
			Author []struct {
				Name string `json:"name"`
			} `json:"author"`
		} `json:"_embedded"`
	}
	q := url.Values{"context": {"edit"}, "_embed": {"author"}}
	if err := c.getJSON(ctx, "post", idPath("/wp/v2/posts", id), q, &body); err != nil {
		return nil, err
	}
	p := &entity.Post{ID: body.ID, Type: body.Type, Title: body.Title.text(), Link: body.Link}
	if len(body.Embedded.Author) > 0 {
		p.AuthorName = body.Embedded.Author[0].Name
	}
	return p, nil
}

func (c *Client) Comment(ctx context.Context, id int64) (*entity.Comment, error) {
	var body struct {
		ID         int64    `json:"id"`
		Post       int64    `json:"post"`
		AuthorName string   `json:"author_name"`
		Content    rendered `json:"content"`
	}
	if err := c.getJSON(ctx, "comment", idPath("/wp/v2/comments", id), editContext, &body); err != nil {
		return nil, err
	}
	return &entity.Comment{ID: body.ID, PostID: body.Post, Author: body.AuthorName, Content: body.Content.text()}, nil
}

// Plugin looks up a plugin by its file ("akismet/akismet.php"). The REST
// route addresses plugins without the .php suffix.
func (c *Client) Plugin(ctx context.Context, file string) (*entity.Plugin, error) {
	var body struct {
		Plugin  string `json:"plugin"`
		Name    string `json:"name"`
		Version string `json:"version"`
	}
	route := "/wp/v2/plugins/" + strings.TrimSuffix(file, ".php")
	if err := c.getJSON(ctx, "plugin", route, nil, &body); err != nil {
		return nil, err
	}
	return &entity.Plugin{File: file, Name: body.Name, Version: body.Version}, nil
}

/* ──── wc/v3 ──── */

func (c *Client) Order(ctx context.Context, id int64) (*entity.Order, error) {
	var body struct {
		ID             int64  `json:"id"`
		Status         string `json:"status"`
		Total          string `json:"total"`
		CurrencySymbol string `json:"currency_symbol"`
		PaymentTitle   string `json:"payment_method_title"`
		Billing        struct {
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
		} `json:"billing"`
		LineItems []struct {
			Quantity int `json:"quantity"`
		} `json:"line_items"`
	}
	if err := c.getJSON(ctx, "order", idPath("/wc/v3/orders", id), nil, &body); err != nil {
		return nil, err
	}
	o := &entity.Order{
		ID:                 body.ID,
		BillingFirstName:   body.Billing.FirstName,
		BillingLastName:    body.Billing.LastName,
		FormattedTotal:     body.CurrencySymbol + body.Total,
		Status:             body.Status,
		PaymentMethodTitle: body.PaymentTitle,
	}
	for _, li := range body.LineItems {
		o.ItemCount += li.Quantity
	}
	return o, nil
}

func (c *Client) Product(ctx context.Context, id int64) (*entity.Product, error) {
	var body struct {
		ID            int64  `json:"id"`
		Name          string `json:"name"`
		Price         string `json:"price"`
		SKU           string `json:"sku"`
		StockStatus   string `json:"stock_status"`
		StockQuantity *int   `json:"stock_quantity"`
	}
	if err := c.getJSON(ctx, "product", idPath("/wc/v3/products", id), nil, &body); err != nil {
		return nil, err
	}
	return &entity.Product{
		ID:            body.ID,
		Name:          body.Name,
		Price:         body.Price,
		SKU:           body.SKU,
		StockStatus:   body.StockStatus,
		StockQuantity: body.StockQuantity,
	}, nil
}

func (c *Client) Customer(ctx context.Context, id int64) (*entity.Customer, error) {
	var body struct {
		ID        int64  `json:"id"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
	}
	if err := c.getJSON(ctx, "customer", idPath("/wc/v3/customers", id), nil, &body); err != nil {
		return nil, err
	}
	return &entity.Customer{ID: body.ID, FirstName: body.FirstName, LastName: body.LastName, Email: body.Email}, nil
}

// Coupon searches by code; an empty result is entity.ErrNotFound.
func (c *Client) Coupon(ctx context.Context, code string) (*entity.Coupon, error) {
	var body []struct {
		ID           int64  `json:"id"`
		Code         string `json:"code"`
		Amount       string `json:"amount"`
		DiscountType string `json:"discount_type"`
	}
	if err := c.getJSON(ctx, "coupon", "/wc/v3/coupons", url.Values{"code": {code}}, &body); err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, entity.ErrNotFound
	}
	b := body[0]
	return &entity.Coupon{ID: b.ID, Code: b.Code, Amount: b.Amount, DiscountType: b.DiscountType}, nil
}
