package dto

import "time"

// TenderItemPayload is one requested item in a tender creation request.
type TenderItemPayload struct {
	Name     string `json:"name" binding:"required"`
	Quantity int64  `json:"quantity"`
	Unit     string `json:"unit"`
}

// CreateTenderRequest describes the admin tender creation payload.
type CreateTenderRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Store       string              `json:"store"`
	Items       []TenderItemPayload `json:"items"`
	Deadline    *time.Time          `json:"deadline,omitempty"`
}

// TenderItemResponse is one requested item of a tender.
type TenderItemResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
	Unit     string `json:"unit"`
}

// TenderResponse represents a tender on the wire.
type TenderResponse struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Store       string               `json:"store"`
	Status      string               `json:"status"`
	Items       []TenderItemResponse `json:"items"`
	Deadline    *time.Time           `json:"deadline,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// AwardItemPayload is one quantity line of an award request.
type AwardItemPayload struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// AwardTenderRequest carries the winning bid and the authoritative
// item/quantity list applied to inventory.
type AwardTenderRequest struct {
	BidID string             `json:"bidId"`
	Items []AwardItemPayload `json:"items"`
}

// AwardTenderResponse reports the decided tender, the accepted bid, and any
// items that could not be matched to a catalog product.
type AwardTenderResponse struct {
	Tender          TenderResponse `json:"tender"`
	Bid             BidResponse    `json:"bid"`
	UnresolvedItems []string       `json:"unresolvedItems,omitempty"`
}
