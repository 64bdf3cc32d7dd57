package models

import "time"

// Social is a link to a social network profile.
type Social struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Platform  string    `gorm:"size:100;not null"              json:"platform"`
	URL       string    `gorm:"column:url;size:2048;not null"  json:"url"`
	Icon      string    `gorm:"size:100"                       json:"icon"`
	CreatedAt time.Time `gorm:"<-:create;autoCreateTime:false" json:"created_at"`
}

// TableName implements Record.
func (Social) TableName() string { return "socials" }

// GetID implements Record.
func (s *Social) GetID() uint64 { return s.ID }

// SetID implements Record.
func (s *Social) SetID(id uint64) { s.ID = id }

// SetCreatedAt implements Record.
func (s *Social) SetCreatedAt(t time.Time) { s.CreatedAt = t }
