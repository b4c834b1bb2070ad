package domain

type Order struct {
	ID         int64       `json:"orderId"`
	Email      string      `json:"email"`
	FullName   string      `json:"fullName"`
	TotalPrice float64     `json:"totalPrice"`
	Address    string      `json:"address"`
	City       string      `json:"city"`
	State      string      `json:"state"`
	Pincode    string      `json:"pincode"`
	Phone      string      `json:"phone,omitempty"`
	Items      []OrderItem `json:"items"`
}

type OrderItem struct {
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}
