package domain

import "time"

// Product statuses. Drafts are invisible to customers; publish/unpublish flip
// between the two, both directions allowed.
const (
	ProductDraft     = "draft"
	ProductPublished = "published"
)

const PlaceholderImage = "https://via.placeholder.com/300x300?text=No+Image"

type Product struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	SellerEmail string    `json:"sellerId"`
	SellerName  string    `json:"sellerName"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Snapshot is the opaque structured form a product takes in activity log
// old_data/new_data columns.
func (p *Product) Snapshot() map[string]interface{} {
	return map[string]interface{}{
		"title":       p.Title,
		"price":       p.Price,
		"description": p.Description,
		"category":    p.Category,
		"image":       p.Image,
	}
}
