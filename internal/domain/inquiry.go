package domain

import "time"

// Inquiry triage statuses
const (
	InquiryNew       = "new"
	InquiryContacted = "contacted"
	InquiryClosed    = "closed"
)

// Inquiry represents a customer contact message. ListingID is nil for
// a general inquiry not tied to a listing.
type Inquiry struct {
	ID        int64     `gorm:"primaryKey" json:"id,string" form:"id"`
	ListingID *int64    `gorm:"index" json:"listing_id,string,omitempty" form:"listing_id"`
	Name      string    `json:"name" form:"name"`
	Email     string    `gorm:"index" json:"email" form:"email"`
	Phone     string    `json:"phone" form:"phone"`
	Message   string    `json:"message" form:"message"`
	Status    string    `gorm:"size:32;index" json:"status" form:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName Specify table name
func (Inquiry) TableName() string {
	return "contact_inquiries"
}

// ValidInquiryStatus reports whether s is a known triage status
func ValidInquiryStatus(s string) bool {
	return s == InquiryNew || s == InquiryContacted || s == InquiryClosed
}
