package domain

import "time"

// Activity log actions, one per product mutation.
const (
	ActionCreated     = "created"
	ActionUpdated     = "updated"
	ActionDeleted     = "deleted"
	ActionPublished   = "published"
	ActionUnpublished = "unpublished"
)

// ActivityLogEntry is append-only: written once per mutation, never updated
// or deleted by the application (cascading seller deletes excepted).
type ActivityLogEntry struct {
	ID           int64                  `json:"id"`
	ProductID    int64                  `json:"product_id"`
	SellerEmail  string                 `json:"seller_email"`
	SellerName   string                 `json:"seller_name"`
	Action       string                 `json:"action"`
	ProductTitle string                 `json:"product_title"`
	OldData      map[string]interface{} `json:"old_data,omitempty"`
	NewData      map[string]interface{} `json:"new_data,omitempty"`
	CreatedAt    time.Time              `json:"timestamp"`
}
