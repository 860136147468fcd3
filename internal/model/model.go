package model

import (
	"time"
)

// Model holds the columns shared by the application's entities.
type Model struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
