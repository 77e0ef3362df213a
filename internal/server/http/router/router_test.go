package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/procurex/procurement/internal/domain/model"
	"github.com/procurex/procurement/internal/server/http/handlers"
	testhelpers "github.com/procurex/procurement/internal/test"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := testhelpers.ProcurementFacadeStub{
		AuthFacadeStub: testhelpers.AuthFacadeStub{},
		TenderFacadeStub: testhelpers.TenderFacadeStub{
			TendersFn: func(context.Context) ([]model.Tender, error) {
				return []model.Tender{{ID: uuid.New(), Title: "supplies", Status: model.TenderStatusActive}}, nil
			},
		},
		BidFacadeStub:   testhelpers.BidFacadeStub{},
		StoreFacadeStub: testhelpers.StoreFacadeStub{},
	}
	engine := Setup(facade, logger)

	body, _ := json.Marshal(map[string]string{"login": "admin", "password": "pass"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for register, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/tenders", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for public tender list, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/stores", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for stores without token, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/stores", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for stores, got %d", resp.Code)
	}
}

var _ handlers.ProcurementFacade = (*testhelpers.ProcurementFacadeStub)(nil)
