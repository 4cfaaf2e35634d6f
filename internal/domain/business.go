package domain

import "time"

// Business represents a business account in the system
type Business struct {
	ID              int64
	OwnerUserID     int64
	Name            string
	Slug            string
	CategoryID      *int64
	IsPublicEnabled bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsOwnedBy returns true if the business belongs to the given user
func (b *Business) IsOwnedBy(userID int64) bool {
	return b.OwnerUserID == userID
}
