package domain

import "time"

// EmailLog is a best-effort audit row for every outbound email.
type EmailLog struct {
	ID             string    `json:"id"`
	RecipientEmail string    `json:"recipient_email"`
	Subject        string    `json:"subject"`
	EmailType      string    `json:"email_type"`      // otp, seller_status, product_created, ...
	DeliveryStatus string    `json:"delivery_status"` // sent, failed
	ErrorMessage   string    `json:"error_message,omitempty"`
	SentAt         time.Time `json:"sent_at"`
}
