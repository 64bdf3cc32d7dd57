package models

import "time"

const (
	// DefaultAchievementIcon is used when an achievement is saved without an icon.
	DefaultAchievementIcon = "fa-trophy"
	// DefaultAchievementLink is used when an achievement is saved without a link.
	DefaultAchievementLink = "#"
)

// Achievement is a milestone shown in the achievements section of the portfolio.
type Achievement struct {
	// ID is assigned by the store as max(id)+1.
	ID          uint64    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Title       string    `gorm:"size:255;not null"              json:"title"`
	Description string    `gorm:"type:text"                      json:"description"`
	Year        int       `gorm:"index"                          json:"year"`
	Highlight   bool      `gorm:"not null"                       json:"highlight"`
	Icon        string    `gorm:"size:100"                       json:"icon"`
	Link        string    `gorm:"size:2048"                      json:"link"`
	CreatedAt   time.Time `gorm:"<-:create;autoCreateTime:false" json:"created_at"`
}

// TableName implements Record.
func (Achievement) TableName() string { return "achievements" }

// GetID implements Record.
func (a *Achievement) GetID() uint64 { return a.ID }

// SetID implements Record.
func (a *Achievement) SetID(id uint64) { a.ID = id }

// SetCreatedAt implements Record.
func (a *Achievement) SetCreatedAt(t time.Time) { a.CreatedAt = t }
