package kafka

import (
	"encoding/json"
	"time"
)

// Event is the envelope of every storefront message. Payload holds the
// event-specific body, decoded by the consumer according to EventType.
type Event struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	SessionID string          `json:"session_id,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// Decode unmarshals the payload into v
func (e Event) Decode(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// OrderLine is one purchased cart line
type OrderLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderPlacedEvent is published once per confirmed order
type OrderPlacedEvent struct {
	OrderNumber    string      `json:"order_number"`
	Email          string      `json:"email"`
	ShippingMethod string      `json:"shipping_method"`
	Lines          []OrderLine `json:"lines"`
	Subtotal       float64     `json:"subtotal"`
	Discount       float64     `json:"discount"`
	Shipping       float64     `json:"shipping"`
	Tax            float64     `json:"tax"`
	Total          float64     `json:"total"`
	PromoCode      string      `json:"promo_code,omitempty"`
}

// ContactSubmittedEvent carries a contact form message
type ContactSubmittedEvent struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	OrderID string `json:"order_id,omitempty"`
	Message string `json:"message"`
}

// NewsletterSubscribedEvent carries a newsletter signup
type NewsletterSubscribedEvent struct {
	Email string `json:"email"`
}

// NotificationEvent mirrors a toast shown to a shopper
type NotificationEvent struct {
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Event types
const (
	EventTypeOrderPlaced          = "order.placed"
	EventTypeContactSubmitted     = "contact.submitted"
	EventTypeNewsletterSubscribed = "newsletter.subscribed"
	EventTypeNotification         = "storefront.notification"
)

// Kafka topics
const (
	TopicOrders        = "storefront-orders"
	TopicContact       = "storefront-contact"
	TopicNewsletter    = "storefront-newsletter"
	TopicNotifications = "storefront-notifications"
)

// Topics lists every topic the storefront publishes to
var Topics = []string{TopicOrders, TopicContact, TopicNewsletter, TopicNotifications}

// TopicFor maps an event type to its topic
func TopicFor(eventType string) string {
	switch eventType {
	case EventTypeOrderPlaced:
		return TopicOrders
	case EventTypeContactSubmitted:
		return TopicContact
	case EventTypeNewsletterSubscribed:
		return TopicNewsletter
	default:
		return TopicNotifications
	}
}
