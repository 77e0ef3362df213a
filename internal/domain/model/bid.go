package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BidStatus describes bid lifecycle.
type BidStatus string

const (
	BidStatusPending  BidStatus = "pending"
	BidStatusAccepted BidStatus = "accepted"
	BidStatusRejected BidStatus = "rejected"
)

// ContactInfo identifies the bidding party. All fields are required.
type ContactInfo struct {
	Name  string
	Email string
	Phone string
}

// BidLine quotes a price for one tender item. Quantities live on the
// tender; a bid only carries prices.
type BidLine struct {
	ItemID uuid.UUID
	Price  decimal.Decimal
}

// Bid is a priced response to a tender submitted by an external party.
type Bid struct {
	ID          uuid.UUID
	TenderID    uuid.UUID
	ContactInfo ContactInfo
	Lines       []BidLine
	Note        string
	Status      BidStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
