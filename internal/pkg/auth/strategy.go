package auth

import "time"

// Strategy issues and validates admin auth tokens.
type Strategy interface {
	IssueToken(adminID int64) (string, error)
	ParseToken(token string) (int64, error)
	Name() string
}

// Options tunes token issuance.
type Options struct {
	TTL time.Duration
}
