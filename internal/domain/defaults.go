package domain

// Collection names one persisted collection.
type Collection string

const (
	CollectionMenu      Collection = "menu"
	CollectionCart      Collection = "cart"
	CollectionPOSCart   Collection = "pos_cart"
	CollectionOrders    Collection = "orders"
	CollectionCustomers Collection = "customers"
	CollectionSettings  Collection = "settings"
	CollectionAuth      Collection = "auth"
	CollectionTheme     Collection = "theme"
)

// Changeset holds new values for collections, written together.
type Changeset map[Collection]any

func DefaultMenu() []MenuItem {
	return []MenuItem{
		{
			ID:          "1",
			Name:        "برجر كلاسيك",
			Description: "شريحة لحم بقري، جبنة، خس، طماطم",
			Price:       150,
			Category:    "وجبات سريعة",
			Image:       "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?w=400&q=80",
		},
		{
			ID:          "2",
			Name:        "مشويات مشكلة",
			Description: "كباب، كفتة، شيش طاووق مع الأرز",
			Price:       350,
			Discount:    50,
			Category:    "مشويات",
			Image:       "https://images.unsplash.com/photo-1555939594-58d7cb561ad1?w=400&q=80",
		},
		{
			ID:          "3",
			Name:        "سلطة سيزر",
			Description: "خس، دجاج مشوي، صوص سيزر",
			Price:       90,
			Category:    "سلطات",
			Image:       "https://images.unsplash.com/photo-1550304943-4f24f54ddde9?w=400&q=80",
		},
		{
			ID:          "4",
			Name:        "عصير برتقال فريش",
			Description: "عصير برتقال طازج",
			Price:       40,
			Category:    "مشروبات",
			Image:       "https://images.unsplash.com/photo-1613478223719-2ab802602423?w=400&q=80",
		},
	}
}

func DefaultCustomers() []Customer {
	return []Customer{
		{ID: "1", Code: "C-1001", Name: "أحمد محمد", Phone: "01111111111", TotalOrders: 5},
	}
}

func DefaultSettings() Settings {
	return Settings{
		RestaurantName: "مطعم السعادة",
		Slogan:         "طعم لا ينسى",
		Phone:          "01000000000",
		WhatsApp:       "01000000000",
		Address:        "شارع التحرير، القاهرة",
		TaxNumber:      "123-456-789",
		DeliveryFee:    20,
		Theme:          "default",
		PaymentMethods: PaymentMethods{Cash: true, Card: true, Receipt: true},
	}
}
