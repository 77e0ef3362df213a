package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/procurex/procurement/internal/server/http/dto"
)

// StoreHandler exposes store ledgers to admins.
type StoreHandler struct {
	facade StoreFacade
}

// NewStoreHandler constructs StoreHandler.
func NewStoreHandler(facade StoreFacade) *StoreHandler {
	return &StoreHandler{facade: facade}
}

// List handles GET /api/stores.
func (h *StoreHandler) List(c *gin.Context) {
	stores, err := h.facade.Stores(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.StoreResponse, 0, len(stores))
	for _, store := range stores {
		items := make([]dto.StoreItemResponse, 0, len(store.Items))
		for _, item := range store.Items {
			items = append(items, dto.StoreItemResponse{Name: item.Name, Quantity: item.Quantity})
		}
		response = append(response, dto.StoreResponse{Name: store.Name, Items: items})
	}
	c.JSON(http.StatusOK, response)
}
