package model

import "time"

// Kind identifies the catalog section a listing belongs to. Each subsidiary
// of the group exposes one catalog.
type Kind string

const (
	KindEstates    Kind = "estates"    // real-estate properties
	KindAgro       Kind = "agro"       // agriculture products
	KindResearch   Kind = "research"   // courses
	KindEnterprise Kind = "enterprise" // trading services
)

// Kinds lists every catalog section in display order.
var Kinds = []Kind{KindEstates, KindAgro, KindResearch, KindEnterprise}

// ValidKind reports whether s names a known catalog section.
func ValidKind(s string) bool {
	for _, k := range Kinds {
		if string(k) == s {
			return true
		}
	}
	return false
}

// CategoryAll is the sentinel category that matches every listing.
const CategoryAll = "All"

// Listing is one catalog record (property, agriculture product, course or
// enterprise service). Records originate in the content upstream; this
// service only reads, filters and projects them.
type Listing struct {
	ID          string            `json:"id" validate:"required"`
	Kind        Kind              `json:"kind" validate:"required"`
	Title       string            `json:"title" validate:"required"`
	Description string            `json:"description"`
	Category    string            `json:"category" validate:"required"`
	Price       float64           `json:"price" validate:"gte=0"`
	Currency    string            `json:"currency"`
	Location    string            `json:"location"`
	Instructor  string            `json:"instructor,omitempty"` // courses only
	ImageURL    string            `json:"image_url" validate:"omitempty,url"`
	Specs       map[string]string `json:"specs,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// FounderProfile is the static profile served on the founder page,
// fetched from the content upstream.
type FounderProfile struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Bio      string `json:"bio"`
	ImageURL string `json:"image_url"`
}

// Service is one enterprise service row used to populate the consultation
// form dropdown.
type Service struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
