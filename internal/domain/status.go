package domain

type OrderStatus string

const (
	StatusWaiting   OrderStatus = "waiting"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDone      OrderStatus = "done"
)

// Next returns the single forward step from s. It reports false for done and
// for unknown values.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case StatusWaiting:
		return StatusPreparing, true
	case StatusPreparing:
		return StatusReady, true
	case StatusReady:
		return StatusDone, true
	}
	return "", false
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusWaiting, StatusPreparing, StatusReady, StatusDone:
		return true
	}
	return false
}

func (s OrderStatus) Label() string {
	switch s {
	case StatusWaiting:
		return "في الانتظار"
	case StatusPreparing:
		return "قيد التحضير"
	case StatusReady:
		return "جاهز"
	case StatusDone:
		return "تم التسليم"
	}
	return string(s)
}

type OrderType string

const (
	OrderDineIn   OrderType = "dine-in"
	OrderTakeaway OrderType = "takeaway"
	OrderDelivery OrderType = "delivery"
)

var OrderTypes = []OrderType{OrderDineIn, OrderTakeaway, OrderDelivery}

func (t OrderType) Valid() bool {
	switch t {
	case OrderDineIn, OrderTakeaway, OrderDelivery:
		return true
	}
	return false
}

func (t OrderType) Label() string {
	switch t {
	case OrderDelivery:
		return "توصيل"
	case OrderTakeaway:
		return "تيك أواي"
	case OrderDineIn:
		return "صالة"
	}
	return string(t)
}

type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "cash"
	PaymentCard    PaymentMethod = "card"
	PaymentReceipt PaymentMethod = "receipt"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentReceipt:
		return true
	}
	return false
}

type Theme string

var Themes = []Theme{"default", "blue", "green", "red", "orange", "royal", "rose", "dark"}

func (t Theme) Valid() bool {
	for _, known := range Themes {
		if t == known {
			return true
		}
	}
	return false
}
