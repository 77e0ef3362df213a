package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainErrors "github.com/procurex/procurement/internal/domain/errors"
	"github.com/procurex/procurement/internal/domain/model"
	"github.com/procurex/procurement/internal/server/http/dto"
	"github.com/procurex/procurement/internal/usecase"
)

// TenderHandler manages tender lifecycle endpoints.
type TenderHandler struct {
	facade TenderFacade
}

// NewTenderHandler constructs TenderHandler.
func NewTenderHandler(facade TenderFacade) *TenderHandler {
	return &TenderHandler{facade: facade}
}

// Create handles POST /api/tenders.
func (h *TenderHandler) Create(c *gin.Context) {
	var req dto.CreateTenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	items := make([]usecase.TenderDraftItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecase.TenderDraftItem{Name: item.Name, Quantity: item.Quantity, Unit: item.Unit})
	}

	tender, err := h.facade.CreateTender(c.Request.Context(), req.Title, req.Description, req.Store, items, req.Deadline, CurrentAdminID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTenderResponse(tender))
}

// List handles GET /api/tenders.
func (h *TenderHandler) List(c *gin.Context) {
	tenders, err := h.facade.Tenders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.TenderResponse, 0, len(tenders))
	for i := range tenders {
		response = append(response, toTenderResponse(&tenders[i]))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/tenders/:id.
func (h *TenderHandler) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	tender, err := h.facade.Tender(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTenderResponse(tender))
}

// Close handles POST /api/tenders/:id/close.
func (h *TenderHandler) Close(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	tender, err := h.facade.CloseTender(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTenderResponse(tender))
}

// Award handles POST /api/tenders/:id/award.
func (h *TenderHandler) Award(c *gin.Context) {
	tenderID, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.AwardTenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	bidID, err := parseID(req.BidID)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]model.AwardItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, model.AwardItem{Name: item.Name, Quantity: item.Quantity})
	}

	result, err := h.facade.AwardTender(c.Request.Context(), tenderID, bidID, items)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AwardTenderResponse{
		Tender:          toTenderResponse(result.Tender),
		Bid:             toBidResponse(result.Bid),
		UnresolvedItems: result.UnresolvedItems,
	})
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid identifier %q", domainErrors.ErrValidation, raw)
	}
	return id, nil
}

func toTenderResponse(tender *model.Tender) dto.TenderResponse {
	items := make([]dto.TenderItemResponse, 0, len(tender.Items))
	for _, item := range tender.Items {
		items = append(items, dto.TenderItemResponse{
			ID:       item.ID.String(),
			Name:     item.Name,
			Quantity: item.Quantity,
			Unit:     string(item.Unit),
		})
	}
	return dto.TenderResponse{
		ID:          tender.ID.String(),
		Title:       tender.Title,
		Description: tender.Description,
		Store:       tender.StoreName,
		Status:      string(tender.Status),
		Items:       items,
		Deadline:    tender.Deadline,
		CreatedAt:   tender.CreatedAt,
		UpdatedAt:   tender.UpdatedAt,
	}
}
