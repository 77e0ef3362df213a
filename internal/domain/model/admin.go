package model

import "time"

// Admin is a platform administrator able to publish and decide tenders.
type Admin struct {
	ID           int64
	Login        string
	PasswordHash string
	CreatedAt    time.Time
}
