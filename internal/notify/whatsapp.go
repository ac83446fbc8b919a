package notify

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"restaurant-storefront/internal/domain"
	"restaurant-storefront/internal/pricing"
)

var ErrNoContact = errors.New("no contact number configured")

const DefaultBaseURL = "https://wa.me"

// WhatsApp turns a notification into a click-to-chat deep link. Delivery is
// left to whoever opens the link.
type WhatsApp struct {
	BaseURL string
}

func NewWhatsApp(baseURL string) *WhatsApp {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &WhatsApp{BaseURL: strings.TrimRight(baseURL, "/")}
}

func (w *WhatsApp) Notify(_ context.Context, n domain.Notification) (string, error) {
	phone := strings.TrimSpace(n.Phone)
	if phone == "" {
		return "", ErrNoContact
	}
	return fmt.Sprintf("%s/%s?text=%s", w.BaseURL, url.PathEscape(phone), encode(n.Text)), nil
}

// encode matches encodeURIComponent closely enough for chat payloads.
func encode(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

func OrderMessage(order domain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "طلب جديد من %s\n", order.CustomerName)
	fmt.Fprintf(&b, "رقم الطلب: %s\n", order.ID)
	fmt.Fprintf(&b, "النوع: %s\n", order.Type.Label())
	b.WriteString("\nالطلبات:\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %s (%d)\n", item.Name, item.Quantity)
	}
	fmt.Fprintf(&b, "\nالإجمالي: %s ج.م", pricing.Format(order.Total))
	if order.Address != "" {
		fmt.Fprintf(&b, "\nالعنوان: %s", order.Address)
	}
	return b.String()
}

func ReadyMessage(orderID, restaurantName string) string {
	return fmt.Sprintf("مرحباً، طلبك رقم %s من %s جاهز الآن!", orderID, restaurantName)
}
