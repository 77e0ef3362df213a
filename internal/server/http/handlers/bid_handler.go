package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/procurex/procurement/internal/domain/model"
	"github.com/procurex/procurement/internal/server/http/dto"
	"github.com/procurex/procurement/internal/usecase"
)

// BidHandler manages bid submission and decision endpoints.
type BidHandler struct {
	facade BidFacade
}

// NewBidHandler constructs BidHandler.
func NewBidHandler(facade BidFacade) *BidHandler {
	return &BidHandler{facade: facade}
}

// Submit handles POST /api/tenders/:id/bids. Open to unauthenticated callers.
func (h *BidHandler) Submit(c *gin.Context) {
	tenderID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.SubmitBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	lines := make([]usecase.BidDraftLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		itemID, err := parseID(line.Item)
		if err != nil {
			respondError(c, err)
			return
		}
		lines = append(lines, usecase.BidDraftLine{ItemID: itemID, Price: line.Price})
	}

	contact := model.ContactInfo{Name: req.Contact.Name, Email: req.Contact.Email, Phone: req.Contact.Phone}
	bid, err := h.facade.SubmitBid(c.Request.Context(), tenderID, lines, req.Note, contact)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBidResponse(bid))
}

// ListByTender handles GET /api/tenders/:id/bids.
func (h *BidHandler) ListByTender(c *gin.Context) {
	tenderID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	bids, err := h.facade.BidsForTender(c.Request.Context(), tenderID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.BidResponse, 0, len(bids))
	for i := range bids {
		response = append(response, toBidResponse(&bids[i]))
	}
	c.JSON(http.StatusOK, response)
}

// SetStatus handles PATCH /api/bids/:id/status.
func (h *BidHandler) SetStatus(c *gin.Context) {
	bidID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.SetBidStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.SetBidStatus(c.Request.Context(), bidID, model.BidStatus(req.Status)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func toBidResponse(bid *model.Bid) dto.BidResponse {
	lines := make([]dto.BidLineResponse, 0, len(bid.Lines))
	for _, line := range bid.Lines {
		lines = append(lines, dto.BidLineResponse{Item: line.ItemID.String(), Price: line.Price})
	}
	return dto.BidResponse{
		ID:       bid.ID.String(),
		TenderID: bid.TenderID.String(),
		Contact: dto.ContactInfoPayload{
			Name:  bid.ContactInfo.Name,
			Email: bid.ContactInfo.Email,
			Phone: bid.ContactInfo.Phone,
		},
		Lines:     lines,
		Note:      bid.Note,
		Status:    string(bid.Status),
		CreatedAt: bid.CreatedAt,
		UpdatedAt: bid.UpdatedAt,
	}
}
