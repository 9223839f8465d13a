package format

import (
	"fmt"

	"discord-logger/internal/domain/entity"
)

var templates = map[entity.EventType]template{
	// identity
	entity.EventUserRegistered: {"👤 New User Registration", entity.ColorGreen, typed(func(p entity.UserPayload) (string, []entity.Field) {
		return fmt.Sprintf("User **%s** (%s) has registered", p.Username, p.Email), []entity.Field{
			inline("Username", p.Username),
			inline("Email", p.Email),
			inline("Registration Date", when(p.OccurredAt)),
		}
	})},
	entity.EventUserLogin: {"🔐 User Login", entity.ColorBlue, typed(func(p entity.UserPayload) (string, []entity.Field) {
		return fmt.Sprintf("User **%s** has logged in", p.Username), []entity.Field{
			inline("Username", p.Username),
			inline("IP Address", p.IP),
			inline("Time", when(p.OccurredAt)),
		}
	})},
	entity.EventUserLogout: {"🚪 User Logout", entity.ColorPurple, typed(func(p entity.UserPayload) (string, []entity.Field) {
		return fmt.Sprintf("User **%s** has logged out", p.Username), []entity.Field{
			inline("Username", p.Username),
			inline("Time", when(p.OccurredAt)),
		}
	})},
	entity.EventLoginFailed: {"❌ Login Failed", entity.ColorRed, typed(func(p entity.UserPayload) (string, []entity.Field) {
		return fmt.Sprintf("Failed login attempt for username: **%s**", p.Username), []entity.Field{
			inline("Username", p.Username),
			inline("IP Address", p.IP),
			inline("Time", when(p.OccurredAt)),
		}
	})},
	entity.EventProfileUpdated: {"👤 User Profile Updated", entity.ColorBlue, typed(func(p entity.UserPayload) (string, []entity.Field) {
		return fmt.Sprintf("User **%s** updated their profile", p.Username), []entity.Field{
			inline("Username", p.Username),
			inline("Email", p.Email),
			inline("Updated", when(p.OccurredAt)),
		}
	})},
	entity.EventUserDeleted: {"🗑️ User Deleted", entity.ColorRed, typed(func(p entity.UserPayload) (string, []entity.Field) {
		return fmt.Sprintf("User **%s** has been deleted", p.Username), []entity.Field{
			inline("Username", p.Username),
			inline("Email", p.Email),
			inline("Deleted", when(p.OccurredAt)),
		}
	})},

	// content
	entity.EventPostPublished: {"📝 New Post Published", entity.ColorGreen, typed(func(p entity.PostPayload) (string, []entity.Field) {
		return fmt.Sprintf("Post **%s** has been published", p.Title), []entity.Field{
			block("Title", p.Title),
			inline("Author", p.Author),
			block("URL", p.URL),
		}
	})},
	entity.EventPostTrashed: {"🗑️ Post Trashed", entity.ColorOrange, typed(func(p entity.PostPayload) (string, []entity.Field) {
		return fmt.Sprintf("Post **%s** has been moved to trash", p.Title), postFields(p)
	})},
	entity.EventPostRestored: {"♻️ Post Restored", entity.ColorGreen, typed(func(p entity.PostPayload) (string, []entity.Field) {
		return fmt.Sprintf("Post **%s** has been restored from trash", p.Title), postFields(p)
	})},
	entity.EventPostDeleted: {"🗑️ Post Permanently Deleted", entity.ColorRed, typed(func(p entity.PostPayload) (string, []entity.Field) {
		return fmt.Sprintf("Post **%s** has been permanently deleted", p.Title), postFields(p)
	})},
	entity.EventCommentPosted: {"💬 New Comment Posted", entity.ColorBlue, typed(func(p entity.CommentPayload) (string, []entity.Field) {
		return fmt.Sprintf("New comment on **%s**", p.PostTitle), []entity.Field{
			inline("Author", p.Author),
			inline("Post", p.PostTitle),
			block("Content", excerpt(p.Content, commentExcerptBytes)+"..."),
		}
	})},
	entity.EventCommentStatusChanged: {"💬 Comment Status Changed", entity.ColorBlue, typed(func(p entity.CommentPayload) (string, []entity.Field) {
		return fmt.Sprintf("Comment status changed to **%s**", p.Status), []entity.Field{
			inline("Post", p.PostTitle),
			inline("Author", p.Author),
			inline("Status", p.Status),
		}
	})},
	entity.EventCommentDeleted: {"🗑️ Comment Deleted", entity.ColorRed, typed(func(p entity.CommentPayload) (string, []entity.Field) {
		return fmt.Sprintf("Comment deleted from **%s**", p.PostTitle), []entity.Field{
			inline("Post", p.PostTitle),
			inline("Author", p.Author),
		}
	})},

	// site
	entity.EventPluginActivated: {"🔌 Plugin Activated", entity.ColorGreen, typed(func(p entity.PluginPayload) (string, []entity.Field) {
		return fmt.Sprintf("Plugin **%s** has been activated", p.Name), pluginFields(p)
	})},
	entity.EventPluginDeactivated: {"🔌 Plugin Deactivated", entity.ColorOrange, typed(func(p entity.PluginPayload) (string, []entity.Field) {
		return fmt.Sprintf("Plugin **%s** has been deactivated", p.Name), pluginFields(p)
	})},
	entity.EventThemeSwitched: {"🎨 Theme Changed", entity.ColorBlue, typed(func(p entity.ThemePayload) (string, []entity.Field) {
		return fmt.Sprintf("Theme switched to **%s**", p.Name), []entity.Field{
			inline("New Theme", p.Name),
			inline("Changed", when(p.OccurredAt)),
		}
	})},
	entity.EventCoreUpdated: {"🔄 WordPress Updated", entity.ColorGreen, typed(func(p entity.CoreUpdatePayload) (string, []entity.Field) {
		return fmt.Sprintf("WordPress has been updated to version **%s**", p.Version), []entity.Field{
			inline("Version", p.Version),
			inline("Updated", when(p.OccurredAt)),
		}
	})},
	entity.EventPlatformError: {"💥 WordPress Error", entity.ColorRed, typed(func(p entity.ErrorPayload) (string, []entity.Field) {
		return fmt.Sprintf("WordPress encountered an error: **%s**", p.Message), []entity.Field{
			block("Error", excerpt(p.Message, errorExcerptBytes)),
			inline("Time", when(p.OccurredAt)),
			inline("User IP", p.IP),
		}
	})},

	// commerce
	entity.EventOrderCreated: {"🛒 New Order Received", entity.ColorGreen, typed(func(p entity.OrderPayload) (string, []entity.Field) {
		return fmt.Sprintf("Order #%d has been placed", p.OrderID), []entity.Field{
			inline("Order ID", orderID(p.OrderID)),
			inline("Customer", p.Customer),
			inline("Total", p.Total),
			inline("Status", p.Status),
			inline("Payment Method", p.PaymentMethod),
			inline("Items", fmt.Sprint(p.ItemCount)),
		}
	})},
	entity.EventOrderStatusChanged: {"📦 Order Status Changed", entity.ColorBlue, typed(func(p entity.OrderPayload) (string, []entity.Field) {
		return fmt.Sprintf("Order #%d status changed from **%s** to **%s**", p.OrderID, p.OldStatus, p.NewStatus), []entity.Field{
			inline("Order ID", orderID(p.OrderID)),
			inline("Old Status", p.OldStatus),
			inline("New Status", p.NewStatus),
			inline("Customer", p.Customer),
			inline("Total", p.Total),
		}
	})},
	entity.EventPaymentCompleted: {"💰 Payment Completed", entity.ColorGreen, typed(func(p entity.OrderPayload) (string, []entity.Field) {
		return fmt.Sprintf("Payment for Order #%d has been completed", p.OrderID), []entity.Field{
			inline("Order ID", orderID(p.OrderID)),
			inline("Amount", p.Total),
			inline("Payment Method", p.PaymentMethod),
			inline("Customer", p.Customer),
		}
	})},
	entity.EventOrderRefunded: {"💸 Order Refunded", entity.ColorRed, typed(func(p entity.OrderPayload) (string, []entity.Field) {
		return fmt.Sprintf("Order #%d has been refunded", p.OrderID), []entity.Field{
			inline("Order ID", orderID(p.OrderID)),
			inline("Customer", p.Customer),
			inline("Total", p.Total),
		}
	})},
	entity.EventProductCreated: {"🆕 New Product Added", entity.ColorGreen, typed(func(p entity.ProductPayload) (string, []entity.Field) {
		return fmt.Sprintf("Product **%s** has been added", p.Name), []entity.Field{
			block("Product Name", p.Name),
			inline("Price", p.Price),
			inline("SKU", orNA(p.SKU)),
			inline("Stock Status", p.StockStatus),
		}
	})},
	entity.EventProductUpdated: {"📦 Product Updated", entity.ColorBlue, typed(func(p entity.ProductPayload) (string, []entity.Field) {
		return fmt.Sprintf("Product **%s** has been updated", p.Name), []entity.Field{
			inline("Product", p.Name),
			inline("Price", p.Price),
			inline("Stock", p.StockStatus),
		}
	})},
	entity.EventProductTrashed: {"🗑️ Product Trashed", entity.ColorOrange, typed(func(p entity.ProductPayload) (string, []entity.Field) {
		return fmt.Sprintf("Product **%s** has been moved to trash", p.Name), []entity.Field{
			inline("Product", p.Name),
			inline("SKU", orNA(p.SKU)),
		}
	})},
	entity.EventCustomerCreated: {"👥 New Customer", entity.ColorGreen, typed(func(p entity.CustomerPayload) (string, []entity.Field) {
		return fmt.Sprintf("New customer **%s** has been created", p.FullName()), []entity.Field{
			inline("Name", p.FullName()),
			inline("Email", p.Email),
			inline("Created", when(p.OccurredAt)),
		}
	})},
	entity.EventCustomerAddressUpdated: {"📍 Customer Address Updated", entity.ColorBlue, typed(func(p entity.CustomerPayload) (string, []entity.Field) {
		return fmt.Sprintf("Customer **%s** updated their address", p.FullName()), []entity.Field{
			inline("Customer", p.FullName()),
			inline("Email", p.Email),
		}
	})},
	entity.EventCartItemAdded: {"🛍️ Item Added to Cart", entity.ColorBlue, typed(func(p entity.CartPayload) (string, []entity.Field) {
		return fmt.Sprintf("**%s** was added to cart", p.Product), []entity.Field{
			inline("Product", p.Product),
			inline("Quantity", fmt.Sprint(p.Quantity)),
			inline("Price", p.Price),
		}
	})},
	entity.EventCartItemRemoved: {"🛍️ Item Removed from Cart", entity.ColorOrange, typed(func(p entity.CartPayload) (string, []entity.Field) {
		return "An item was removed from cart", []entity.Field{
			inline("Action", "Item removed"),
			inline("Time", when(p.OccurredAt)),
		}
	})},
	entity.EventCouponApplied: {"🎟️ Coupon Used", entity.ColorBlue, typed(func(p entity.CouponPayload) (string, []entity.Field) {
		return fmt.Sprintf("Coupon **%s** has been applied", p.Code), []entity.Field{
			inline("Code", p.Code),
			inline("Discount", discount(p)),
			inline("Used", when(p.OccurredAt)),
		}
	})},
	entity.EventStockChanged: {"📊 Stock Level Changed", entity.ColorOrange, typed(func(p entity.ProductPayload) (string, []entity.Field) {
		return fmt.Sprintf("Stock updated for **%s**", p.Name), []entity.Field{
			inline("Product", p.Name),
			inline("Stock Quantity", stockQuantity(p.StockQuantity)),
			inline("Status", p.StockStatus),
		}
	})},
}

func postFields(p entity.PostPayload) []entity.Field {
	return []entity.Field{
		block("Title", p.Title),
		inline("Author", p.Author),
	}
}

func pluginFields(p entity.PluginPayload) []entity.Field {
	return []entity.Field{
		inline("Plugin", p.Name),
		inline("Version", p.Version),
	}
}
