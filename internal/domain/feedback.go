package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback is singular per member: the document is keyed by the member's
// account ID and re-submission replaces the previous text.
type Feedback struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	FullName  string             `bson:"fullName" json:"fullName"`
	Feedback  string             `bson:"feedback" json:"feedback"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Carousel holds the index math for the rotating single-item feedback view.
// Navigation wraps modulo the total count in both directions.
type Carousel struct {
	Total int
}

// Clamp forces an arbitrary client-supplied index into [0, Total).
func (c Carousel) Clamp(i int) int {
	if c.Total <= 0 {
		return 0
	}
	if i < 0 || i >= c.Total {
		return 0
	}
	return i
}

// Next advances by one; from the last entry it wraps to the first.
func (c Carousel) Next(i int) int {
	if c.Total <= 0 {
		return 0
	}
	return (c.Clamp(i) + 1) % c.Total
}

// Prev goes back by one; from the first entry it wraps to the last.
func (c Carousel) Prev(i int) int {
	if c.Total <= 0 {
		return 0
	}
	return (c.Clamp(i) + c.Total - 1) % c.Total
}

// ShowNavigation reports whether the view should render prev/next controls.
// Zero entries means the empty placeholder, exactly one suppresses them.
func (c Carousel) ShowNavigation() bool {
	return c.Total > 1
}
