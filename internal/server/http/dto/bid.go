package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContactInfoPayload identifies the bidding party.
type ContactInfoPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// BidLinePayload quotes a price for one tender item.
type BidLinePayload struct {
	Item  string          `json:"item"`
	Price decimal.Decimal `json:"price"`
}

// SubmitBidRequest describes the public bid submission payload.
type SubmitBidRequest struct {
	Lines   []BidLinePayload   `json:"bids"`
	Note    string             `json:"note,omitempty"`
	Contact ContactInfoPayload `json:"contactInfo"`
}

// SetBidStatusRequest carries an explicit bid decision.
type SetBidStatusRequest struct {
	Status string `json:"status"`
}

// BidLineResponse is one priced line of a bid.
type BidLineResponse struct {
	Item  string          `json:"item"`
	Price decimal.Decimal `json:"price"`
}

// BidResponse represents a bid on the wire.
type BidResponse struct {
	ID        string             `json:"id"`
	TenderID  string             `json:"tenderId"`
	Contact   ContactInfoPayload `json:"contactInfo"`
	Lines     []BidLineResponse  `json:"bids"`
	Note      string             `json:"note,omitempty"`
	Status    string             `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
