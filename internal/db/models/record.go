// Package models contains the database model definitions of the portfolio collections.
package models

import "time"

// Record is a row of an id keyed collection.
// The store assigns ids and creation time, handlers never set them.
type Record interface {
	TableName() string
	GetID() uint64
	SetID(id uint64)
	SetCreatedAt(t time.Time)
}
