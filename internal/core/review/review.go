package review

import "time"

// Review is a member's rating and write-up of a venue.
type Review struct {
	ID        int64     `json:"review_id"`
	VenueID   int64     `json:"venue_id"`
	UserID    int64     `json:"user_id"`
	Rating    float64   `json:"rating"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	FieldRating = "rating"
	FieldText   = "text"

	// MaxTextLen bounds the review body.
	MaxTextLen = 1000
)
