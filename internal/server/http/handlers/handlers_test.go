package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/procurex/procurement/internal/domain/errors"
	"github.com/procurex/procurement/internal/domain/model"
	"github.com/procurex/procurement/internal/server/http/dto"
	"github.com/procurex/procurement/internal/server/http/middleware"
	testhelpers "github.com/procurex/procurement/internal/test"
	"github.com/procurex/procurement/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, path string, handler gin.HandlerFunc, setup func(*gin.Context), target string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, path, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

func TestCurrentAdminID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentAdminID(c); got != 0 {
		t.Fatalf("expected 0 when not set, got %d", got)
	}

	c.Set(middleware.AdminIDContextKey, int64(42))
	if got := CurrentAdminID(c); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	body, _ := json.Marshal(dto.AuthRequest{Login: "admin", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(testhelpers.AuthFacadeStub{}).Register, nil, "/register", body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Header().Get("Authorization") == "" {
		t.Fatalf("expected auth header to be set")
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{
			name:   "malformed body",
			facade: testhelpers.AuthFacadeStub{},
			body:   []byte("{"),
			status: http.StatusBadRequest,
		},
		{
			name: "invalid credentials",
			facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string) (string, error) {
				return "", domainErrors.ErrInvalidCredentials
			}},
			body:   mustJSON(t, dto.AuthRequest{Login: "admin", Password: ""}),
			status: http.StatusBadRequest,
		},
		{
			name: "duplicate login",
			facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string) (string, error) {
				return "", domainErrors.ErrAlreadyExists
			}},
			body:   mustJSON(t, dto.AuthRequest{Login: "admin", Password: "pass"}),
			status: http.StatusConflict,
		},
		{
			name: "internal failure",
			facade: testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string) (string, error) {
				return "", errors.New("boom")
			}},
			body:   mustJSON(t, dto.AuthRequest{Login: "admin", Password: "pass"}),
			status: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(tc.facade).Register, nil, "/register", tc.body, jsonHeaders)
			if resp.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	body, _ := json.Marshal(dto.AuthRequest{Login: "admin", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/login", NewAuthHandler(testhelpers.AuthFacadeStub{}).Login, nil, "/login", body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	facade := testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
		return "", domainErrors.ErrInvalidCredentials
	}}
	resp = performRequest(t, http.MethodPost, "/login", NewAuthHandler(facade).Login, nil, "/login", body, jsonHeaders)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestTenderHandlerCreate(t *testing.T) {
	var gotCreator int64
	facade := testhelpers.TenderFacadeStub{CreateFn: func(_ context.Context, title, description, storeName string, items []usecase.TenderDraftItem, _ *time.Time, createdBy int64) (*model.Tender, error) {
		gotCreator = createdBy
		return &model.Tender{
			ID:          uuid.New(),
			Title:       title,
			Description: description,
			StoreName:   storeName,
			Status:      model.TenderStatusActive,
			Items: []model.TenderItem{
				{ID: uuid.New(), Name: items[0].Name, Quantity: items[0].Quantity, Unit: model.UnitBox},
			},
		}, nil
	}}

	body := mustJSON(t, dto.CreateTenderRequest{
		Title:       "supplies",
		Description: "quarterly",
		Store:       "central",
		Items:       []dto.TenderItemPayload{{Name: "paper", Quantity: 10, Unit: "box"}},
	})
	setAdmin := func(c *gin.Context) { c.Set(middleware.AdminIDContextKey, int64(7)) }
	resp := performRequest(t, http.MethodPost, "/tenders", NewTenderHandler(facade).Create, setAdmin, "/tenders", body, jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if gotCreator != 7 {
		t.Fatalf("expected creator 7, got %d", gotCreator)
	}

	var created dto.TenderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Status != "active" || len(created.Items) != 1 {
		t.Fatalf("unexpected response %+v", created)
	}
}

func TestTenderHandlerCreateValidation(t *testing.T) {
	facade := testhelpers.TenderFacadeStub{CreateFn: func(context.Context, string, string, string, []usecase.TenderDraftItem, *time.Time, int64) (*model.Tender, error) {
		return nil, domainErrors.ErrValidation
	}}
	body := mustJSON(t, dto.CreateTenderRequest{Title: "supplies"})
	resp := performRequest(t, http.MethodPost, "/tenders", NewTenderHandler(facade).Create, nil, "/tenders", body, jsonHeaders)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}

	var payload dto.ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error payload: %v", err)
	}
	if payload.Kind != "validation" {
		t.Fatalf("expected validation kind, got %q", payload.Kind)
	}
}

func TestTenderHandlerGet(t *testing.T) {
	id := uuid.New()
	resp := performRequest(t, http.MethodGet, "/tenders/:id", NewTenderHandler(testhelpers.TenderFacadeStub{}).Get, nil, "/tenders/"+id.String(), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/tenders/:id", NewTenderHandler(testhelpers.TenderFacadeStub{}).Get, nil, "/tenders/not-a-uuid", nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for malformed id, got %d", resp.Code)
	}

	missing := testhelpers.TenderFacadeStub{TenderFn: func(context.Context, uuid.UUID) (*model.Tender, error) {
		return nil, domainErrors.ErrNotFound
	}}
	resp = performRequest(t, http.MethodGet, "/tenders/:id", NewTenderHandler(missing).Get, nil, "/tenders/"+id.String(), nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestTenderHandlerClose(t *testing.T) {
	id := uuid.New()
	resp := performRequest(t, http.MethodPost, "/tenders/:id/close", NewTenderHandler(testhelpers.TenderFacadeStub{}).Close, nil, "/tenders/"+id.String()+"/close", nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	decided := testhelpers.TenderFacadeStub{CloseFn: func(context.Context, uuid.UUID) (*model.Tender, error) {
		return nil, domainErrors.ErrInvalidTransition
	}}
	resp = performRequest(t, http.MethodPost, "/tenders/:id/close", NewTenderHandler(decided).Close, nil, "/tenders/"+id.String()+"/close", nil, nil)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}

	var payload dto.ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error payload: %v", err)
	}
	if payload.Kind != "invalid_transition" {
		t.Fatalf("expected invalid_transition kind, got %q", payload.Kind)
	}
}

func TestTenderHandlerAward(t *testing.T) {
	tenderID := uuid.New()
	bidID := uuid.New()

	body := mustJSON(t, dto.AwardTenderRequest{
		BidID: bidID.String(),
		Items: []dto.AwardItemPayload{{Name: "paper", Quantity: 10}},
	})

	facade := testhelpers.TenderFacadeStub{AwardFn: func(_ context.Context, gotTender, gotBid uuid.UUID, items []model.AwardItem) (*model.AwardResult, error) {
		if gotTender != tenderID || gotBid != bidID {
			t.Fatalf("unexpected identifiers passed to facade")
		}
		if len(items) != 1 || items[0].Quantity != 10 {
			t.Fatalf("unexpected award items %+v", items)
		}
		return &model.AwardResult{
			Tender:          &model.Tender{ID: gotTender, Status: model.TenderStatusAwarded},
			Bid:             &model.Bid{ID: gotBid, TenderID: gotTender, Status: model.BidStatusAccepted},
			UnresolvedItems: []string{"paper"},
		}, nil
	}}

	resp := performRequest(t, http.MethodPost, "/tenders/:id/award", NewTenderHandler(facade).Award, nil, "/tenders/"+tenderID.String()+"/award", body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var payload dto.AwardTenderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Tender.Status != "awarded" || payload.Bid.Status != "accepted" {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if len(payload.UnresolvedItems) != 1 {
		t.Fatalf("expected unresolved items to pass through")
	}
}

func TestTenderHandlerAwardFailures(t *testing.T) {
	tenderID := uuid.New()
	okBody := mustJSON(t, dto.AwardTenderRequest{BidID: uuid.New().String(), Items: []dto.AwardItemPayload{{Name: "paper", Quantity: 1}}})

	tests := []struct {
		name   string
		target string
		body   []byte
		err    error
		status int
	}{
		{name: "malformed tender id", target: "/tenders/nope/award", body: okBody, status: http.StatusBadRequest},
		{name: "malformed body", target: "/tenders/" + tenderID.String() + "/award", body: []byte("{"), status: http.StatusBadRequest},
		{name: "malformed bid id", target: "/tenders/" + tenderID.String() + "/award", body: mustJSON(t, dto.AwardTenderRequest{BidID: "nope"}), status: http.StatusBadRequest},
		{name: "already decided", target: "/tenders/" + tenderID.String() + "/award", body: okBody, err: domainErrors.ErrInvalidTransition, status: http.StatusConflict},
		{name: "lost race", target: "/tenders/" + tenderID.String() + "/award", body: okBody, err: domainErrors.ErrConflict, status: http.StatusConflict},
		{name: "unknown tender", target: "/tenders/" + tenderID.String() + "/award", body: okBody, err: domainErrors.ErrNotFound, status: http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			facade := testhelpers.TenderFacadeStub{AwardFn: func(context.Context, uuid.UUID, uuid.UUID, []model.AwardItem) (*model.AwardResult, error) {
				if tc.err != nil {
					return nil, tc.err
				}
				t.Fatal("facade must not be reached")
				return nil, nil
			}}
			resp := performRequest(t, http.MethodPost, "/tenders/:id/award", NewTenderHandler(facade).Award, nil, tc.target, tc.body, jsonHeaders)
			if resp.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, resp.Code)
			}
		})
	}
}

func TestBidHandlerSubmit(t *testing.T) {
	tenderID := uuid.New()
	itemID := uuid.New()

	body := mustJSON(t, dto.SubmitBidRequest{
		Lines:   []dto.BidLinePayload{{Item: itemID.String(), Price: decimal.NewFromFloat(9.99)}},
		Note:    "fast delivery",
		Contact: dto.ContactInfoPayload{Name: "ACME", Email: "sales@acme.test", Phone: "5551234567"},
	})

	facade := testhelpers.BidFacadeStub{SubmitFn: func(_ context.Context, gotTender uuid.UUID, lines []usecase.BidDraftLine, note string, contact model.ContactInfo) (*model.Bid, error) {
		if gotTender != tenderID {
			t.Fatalf("unexpected tender id")
		}
		if len(lines) != 1 || lines[0].ItemID != itemID {
			t.Fatalf("unexpected lines %+v", lines)
		}
		if contact.Email != "sales@acme.test" {
			t.Fatalf("unexpected contact %+v", contact)
		}
		return &model.Bid{
			ID:          uuid.New(),
			TenderID:    gotTender,
			ContactInfo: contact,
			Lines:       []model.BidLine{{ItemID: itemID, Price: lines[0].Price}},
			Note:        note,
			Status:      model.BidStatusPending,
		}, nil
	}}

	resp := performRequest(t, http.MethodPost, "/tenders/:id/bids", NewBidHandler(facade).Submit, nil, "/tenders/"+tenderID.String()+"/bids", body, jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}

	var payload dto.BidResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Status != "pending" || len(payload.Lines) != 1 {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if !payload.Lines[0].Price.Equal(decimal.NewFromFloat(9.99)) {
		t.Fatalf("price lost precision: %s", payload.Lines[0].Price)
	}
}

func TestBidHandlerSubmitFailures(t *testing.T) {
	tenderID := uuid.New()
	okBody := mustJSON(t, dto.SubmitBidRequest{
		Lines:   []dto.BidLinePayload{{Item: uuid.New().String(), Price: decimal.NewFromInt(1)}},
		Contact: dto.ContactInfoPayload{Name: "ACME", Email: "sales@acme.test", Phone: "5551234567"},
	})

	tests := []struct {
		name   string
		target string
		body   []byte
		err    error
		status int
	}{
		{name: "malformed tender id", target: "/tenders/nope/bids", body: okBody, status: http.StatusBadRequest},
		{name: "malformed body", target: "/tenders/" + tenderID.String() + "/bids", body: []byte("{"), status: http.StatusBadRequest},
		{name: "malformed item id", target: "/tenders/" + tenderID.String() + "/bids", body: mustJSON(t, dto.SubmitBidRequest{Lines: []dto.BidLinePayload{{Item: "nope"}}}), status: http.StatusBadRequest},
		{name: "tender closed", target: "/tenders/" + tenderID.String() + "/bids", body: okBody, err: domainErrors.ErrInvalidTransition, status: http.StatusConflict},
		{name: "validation", target: "/tenders/" + tenderID.String() + "/bids", body: okBody, err: domainErrors.ErrValidation, status: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			facade := testhelpers.BidFacadeStub{SubmitFn: func(context.Context, uuid.UUID, []usecase.BidDraftLine, string, model.ContactInfo) (*model.Bid, error) {
				if tc.err != nil {
					return nil, tc.err
				}
				t.Fatal("facade must not be reached")
				return nil, nil
			}}
			resp := performRequest(t, http.MethodPost, "/tenders/:id/bids", NewBidHandler(facade).Submit, nil, tc.target, tc.body, jsonHeaders)
			if resp.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, resp.Code)
			}
		})
	}
}

func TestBidHandlerListByTender(t *testing.T) {
	tenderID := uuid.New()
	resp := performRequest(t, http.MethodGet, "/tenders/:id/bids", NewBidHandler(testhelpers.BidFacadeStub{}).ListByTender, nil, "/tenders/"+tenderID.String()+"/bids", nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var payload []dto.BidResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload) != 1 {
		t.Fatalf("expected one bid, got %d", len(payload))
	}
}

func TestBidHandlerSetStatus(t *testing.T) {
	bidID := uuid.New()
	body := mustJSON(t, dto.SetBidStatusRequest{Status: "rejected"})

	var gotStatus model.BidStatus
	facade := testhelpers.BidFacadeStub{SetStatusFn: func(_ context.Context, _ uuid.UUID, status model.BidStatus) error {
		gotStatus = status
		return nil
	}}
	resp := performRequest(t, http.MethodPatch, "/bids/:id/status", NewBidHandler(facade).SetStatus, nil, "/bids/"+bidID.String()+"/status", body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotStatus != model.BidStatusRejected {
		t.Fatalf("unexpected status %q", gotStatus)
	}

	missing := testhelpers.BidFacadeStub{SetStatusFn: func(context.Context, uuid.UUID, model.BidStatus) error {
		return domainErrors.ErrNotFound
	}}
	resp = performRequest(t, http.MethodPatch, "/bids/:id/status", NewBidHandler(missing).SetStatus, nil, "/bids/"+bidID.String()+"/status", body, jsonHeaders)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestStoreHandlerList(t *testing.T) {
	facade := testhelpers.StoreFacadeStub{StoresFn: func(context.Context) ([]model.Store, error) {
		return []model.Store{{ID: 1, Name: "central", Items: []model.StoreItem{{Name: "paper", Quantity: 10}}}}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/stores", NewStoreHandler(facade).List, nil, "/stores", nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var payload []dto.StoreResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload) != 1 || payload[0].Name != "central" || len(payload[0].Items) != 1 {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}
