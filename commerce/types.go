package commerce

import "time"

// Order is the typed contract for the platform's order resource. Monetary
// amounts arrive as integer minor units (centavos).
type Order struct {
	ID                     int64     `json:"id"`
	Number                 int64     `json:"number"`
	Status                 string    `json:"status"`
	PaymentStatus          string    `json:"payment_status"`
	ShippingStatus         string    `json:"shipping_status"`
	ShippingTrackingNumber string    `json:"shipping_tracking_number"`
	Total                  int64     `json:"total"`
	Currency               string    `json:"currency"`
	CreatedAt              time.Time `json:"created_at"`
	Customer               *Customer `json:"customer,omitempty"`
}

type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Product struct {
	ID        int64             `json:"id"`
	Name      map[string]string `json:"name"`
	Handle    map[string]string `json:"handle,omitempty"`
	Published bool              `json:"published"`
	Variants  []ProductVariant  `json:"variants,omitempty"`
}

type ProductVariant struct {
	ID    int64  `json:"id"`
	Price int64  `json:"price"`
	SKU   string `json:"sku"`
	Stock int64  `json:"stock"`
}

// OrderChanges carries the mutable fields of an order update.
type OrderChanges struct {
	Status                 string `json:"status,omitempty"`
	ShippingTrackingNumber string `json:"shipping_tracking_number,omitempty"`
	OwnerNote              string `json:"owner_note,omitempty"`
}
