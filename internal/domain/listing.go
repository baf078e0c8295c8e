package domain

import "time"

// Listing kinds
const (
	KindForSale = "for-sale"
	KindForRent = "for-rent"
)

// Listing categories
const (
	CategoryHouse      = "house"
	CategoryApartment  = "apartment"
	CategoryLand       = "land"
	CategoryCommercial = "commercial"
)

// Listing lifecycle statuses. Transitions are unconstrained, any
// status may follow any other.
const (
	StatusAvailable = "available"
	StatusSold      = "sold"
	StatusRented    = "rented"
)

// Listing represents a property record shown in the catalog
type Listing struct {
	ID          int64     `gorm:"primaryKey" json:"id,string" form:"id"`
	Title       string    `gorm:"index" json:"title" form:"title"`
	Description string    `json:"description" form:"description"`
	Price       float64   `json:"price" form:"price"`
	Kind        string    `gorm:"size:32;index" json:"kind" form:"kind"`         // for-sale / for-rent
	Category    string    `gorm:"size:32;index" json:"category" form:"category"` // house / apartment / land / commercial
	Bedrooms    int       `json:"bedrooms" form:"bedrooms"`
	Bathrooms   int       `json:"bathrooms" form:"bathrooms"`
	AreaSqm     float64   `json:"area_sqm" form:"area_sqm"`
	Location    string    `json:"location" form:"location"`
	City        string    `gorm:"index" json:"city" form:"city"`
	Latitude    *float64  `json:"latitude,omitempty" form:"latitude"`
	Longitude   *float64  `json:"longitude,omitempty" form:"longitude"`
	Featured    bool      `gorm:"index" json:"featured" form:"featured"`
	Status      string    `gorm:"size:32;index" json:"status" form:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Listing) TableName() string {
	return "listings"
}

// ValidKind reports whether s is a known transactional kind
func ValidKind(s string) bool {
	return s == KindForSale || s == KindForRent
}

// ValidCategory reports whether s is a known category
func ValidCategory(s string) bool {
	switch s {
	case CategoryHouse, CategoryApartment, CategoryLand, CategoryCommercial:
		return true
	}
	return false
}

// ValidStatus reports whether s is a known lifecycle status
func ValidStatus(s string) bool {
	return s == StatusAvailable || s == StatusSold || s == StatusRented
}

// ListingImage represents an image attached to a listing. At most one
// image per listing should carry the primary flag; this is not
// enforced at the storage layer.
type ListingImage struct {
	ID         int64     `gorm:"primaryKey" json:"id,string" form:"id"`
	ListingID  int64     `gorm:"index" json:"listing_id,string" form:"listing_id"`
	ImageURL   string    `gorm:"size:1024" json:"image_url" form:"image_url"`
	IsPrimary  bool      `json:"is_primary" form:"is_primary"`
	OrderIndex int       `json:"order_index" form:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName Specify table name
func (ListingImage) TableName() string {
	return "listing_images"
}
