package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account identity. It only matters to the core as the
// ownership key for study entries.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
