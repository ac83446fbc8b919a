package domain

import "time"

type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Discount    float64 `json:"discount"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
}

// UnitPrice is the price actually charged for one unit.
func (m MenuItem) UnitPrice() float64 {
	return m.Price - m.Discount
}

type CartItem struct {
	MenuItem
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

type Order struct {
	ID            string        `json:"id"`
	Items         []CartItem    `json:"items"`
	Total         float64       `json:"total"`
	Status        OrderStatus   `json:"status"`
	Type          OrderType     `json:"type"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	CustomerPhone string        `json:"customerPhone,omitempty"`
	CustomerName  string        `json:"customerName,omitempty"`
	Address       string        `json:"address,omitempty"`
	Timestamp     int64         `json:"timestamp"`
}

// Customer reports the customer attached to the order, if any.
func (o Order) Customer() (CustomerRef, bool) {
	if o.CustomerPhone == "" {
		return CustomerRef{}, false
	}
	return CustomerRef{Name: o.CustomerName, Phone: o.CustomerPhone}, true
}

func (o Order) CreatedAt() time.Time {
	return time.UnixMilli(o.Timestamp)
}

// CustomerRef is the name and phone pair supplied at checkout or at the counter.
type CustomerRef struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type Customer struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	TotalOrders int    `json:"totalOrders"`
}

type PaymentMethods struct {
	Cash    bool `json:"cash"`
	Card    bool `json:"card"`
	Receipt bool `json:"receipt"`
}

func (p PaymentMethods) Enabled(m PaymentMethod) bool {
	switch m {
	case PaymentCash:
		return p.Cash
	case PaymentCard:
		return p.Card
	case PaymentReceipt:
		return p.Receipt
	}
	return false
}

type Settings struct {
	RestaurantName string         `json:"restaurantName"`
	Slogan         string         `json:"slogan"`
	Phone          string         `json:"phone"`
	WhatsApp       string         `json:"whatsapp"`
	Address        string         `json:"address"`
	TaxNumber      string         `json:"taxNumber"`
	DeliveryFee    float64        `json:"deliveryFee"`
	Theme          Theme          `json:"theme"`
	PaymentMethods PaymentMethods `json:"paymentMethods"`
}

// Quote is a priced view of a set of cart items.
type Quote struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"deliveryFee"`
	Total       float64 `json:"total"`
}

type Notification struct {
	Phone string
	Text  string
}

type OrderEvent struct {
	Type      string      `json:"type"`
	OrderID   string      `json:"order_id"`
	Status    OrderStatus `json:"status"`
	OrderType OrderType   `json:"order_type"`
	Total     float64     `json:"total"`
	Timestamp time.Time   `json:"timestamp"`
}

const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
)

type DashboardStats struct {
	TotalRevenue   float64           `json:"totalRevenue"`
	TodayRevenue   float64           `json:"todayRevenue"`
	TotalOrders    int               `json:"totalOrders"`
	TodayOrders    int               `json:"todayOrders"`
	TotalCustomers int               `json:"totalCustomers"`
	OrdersByType   map[OrderType]int `json:"ordersByType"`
}

// DailySales is the event-fed tally for one calendar day.
type DailySales struct {
	Date     string              `json:"date"`
	Orders   int                 `json:"orders"`
	Revenue  float64             `json:"revenue"`
	ByType   map[OrderType]int   `json:"byType"`
	ByStatus map[OrderStatus]int `json:"byStatus"`
}
