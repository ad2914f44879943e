package models

// OrderPayload represents the raw order notification sent by the payment form.
// Every field is optional; unknown fields are ignored on decode.
type OrderPayload struct {
	Test    string   `json:"test,omitempty"`
	Payment *Payment `json:"payment,omitempty"`
	Email   string   `json:"ma_email,omitempty"`
}

// Payment is the nested payment block of an order notification.
type Payment struct {
	Amount   float64   `json:"amount"`
	OrderID  string    `json:"orderid"`
	Products []Product `json:"products,omitempty"`
}

// Product is a single purchased position inside a payment.
type Product struct {
	Name     string   `json:"name"`
	Quantity float64  `json:"quantity"`
	Price    float64  `json:"price"`
	Amount   float64  `json:"amount"`
	Options  []Option `json:"options,omitempty"`
}

// Option is a named product customization, e.g. {option: "Color", variant: "Red"}.
type Option struct {
	Option  string `json:"option"`
	Variant string `json:"variant"`
}
