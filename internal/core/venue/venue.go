package venue

import "time"

// Venue represents a nightlife location that members can review.
type Venue struct {
	ID          int64     `json:"venue_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Address     string    `json:"address"`
	Hours       string    `json:"hours"`
	VenueTypes  []string  `json:"venue_types"`
	AgeReq      int       `json:"age_req"`
	Description string    `json:"description"`
	Capacity    int       `json:"capacity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Filter holds the parameters for a paginated venue search.
type Filter struct {
	Query string // ILIKE search against name
	Type  string // Exact match against one of venue_types
}

const (
	FieldName        = "name"
	FieldAddress     = "address"
	FieldHours       = "hours"
	FieldVenueTypes  = "venue_types"
	FieldAgeReq      = "age_req"
	FieldDescription = "description"
	FieldCapacity    = "capacity"
)
