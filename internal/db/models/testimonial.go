package models

import "time"

const (
	// DefaultRating is stored when a testimonial comes without a rating.
	DefaultRating = 5
	// MinRating is the lowest accepted rating.
	MinRating = 1
	// MaxRating is the highest accepted rating.
	MaxRating = 5
)

// Testimonial is a quote of a client or colleague.
type Testimonial struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name      string    `gorm:"size:255;not null"              json:"name"`
	Role      string    `gorm:"size:255"                       json:"role"`
	Message   string    `gorm:"type:text;not null"             json:"message"`
	Rating    int       `gorm:"not null"                       json:"rating"`
	CreatedAt time.Time `gorm:"<-:create;autoCreateTime:false" json:"created_at"`
}

// TableName implements Record.
func (Testimonial) TableName() string { return "testimonials" }

// GetID implements Record.
func (t *Testimonial) GetID() uint64 { return t.ID }

// SetID implements Record.
func (t *Testimonial) SetID(id uint64) { t.ID = id }

// SetCreatedAt implements Record.
func (t *Testimonial) SetCreatedAt(ts time.Time) { t.CreatedAt = ts }
