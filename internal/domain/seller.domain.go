package domain

import "time"

// Seller account statuses. Transitions are admin-initiated only; a seller
// cannot move their own account out of Pending.
const (
	SellerPending  = "Pending"
	SellerApproved = "Approved"
	SellerRejected = "Rejected"
)

type Seller struct {
	ID               int64     `json:"id"`
	FullName         string    `json:"name"`
	Email            string    `json:"email"`
	StoreName        string    `json:"storeName"`
	StoreDescription string    `json:"store_description"`
	PasswordHash     string    `json:"-"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
}

// SellerStatusChange is written in the same transaction as the status update
// on sellers, one row per transition.
type SellerStatusChange struct {
	ID          int64     `json:"id"`
	SellerID    int64     `json:"seller_id"`
	SellerEmail string    `json:"seller_email"`
	SellerName  string    `json:"seller_name"`
	StoreName   string    `json:"store_name"`
	OldStatus   string    `json:"old_status"`
	NewStatus   string    `json:"new_status"`
	EmailSent   bool      `json:"email_sent"`
	CreatedAt   time.Time `json:"created_at"`
}
