package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	domainErrors "github.com/procurex/procurement/internal/domain/errors"
	"github.com/procurex/procurement/internal/domain/model"
	testhelpers "github.com/procurex/procurement/internal/test"
	"github.com/procurex/procurement/internal/usecase"
)

func newTenderUseCase() (*usecase.TenderUseCase, *testhelpers.TenderRepositoryStub, *testhelpers.BidRepositoryStub) {
	tenders := &testhelpers.TenderRepositoryStub{}
	bids := &testhelpers.BidRepositoryStub{}
	return usecase.NewTenderUseCase(tenders, bids, usecase.NewTenderLocks()), tenders, bids
}

func validDraftItems() []usecase.TenderDraftItem {
	return []usecase.TenderDraftItem{
		{Name: "paper", Quantity: 10, Unit: "box"},
		{Name: "cable", Quantity: 5, Unit: "meter"},
	}
}

func TestTenderCreateValidation(t *testing.T) {
	uc, _, _ := newTenderUseCase()
	ctx := context.Background()

	cases := []struct {
		name  string
		title string
		desc  string
		store string
		items []usecase.TenderDraftItem
	}{
		{name: "missing title", desc: "d", store: "central", items: validDraftItems()},
		{name: "missing description", title: "t", store: "central", items: validDraftItems()},
		{name: "missing store", title: "t", desc: "d", items: validDraftItems()},
		{name: "no items", title: "t", desc: "d", store: "central"},
		{name: "empty item name", title: "t", desc: "d", store: "central", items: []usecase.TenderDraftItem{{Quantity: 1, Unit: "kg"}}},
		{name: "zero quantity", title: "t", desc: "d", store: "central", items: []usecase.TenderDraftItem{{Name: "paper", Quantity: 0, Unit: "kg"}}},
		{name: "unknown unit", title: "t", desc: "d", store: "central", items: []usecase.TenderDraftItem{{Name: "paper", Quantity: 1, Unit: "bucket"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tc.title, tc.desc, tc.store, tc.items, nil, 1)
			if !errors.Is(err, domainErrors.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestTenderCreatePublishesActive(t *testing.T) {
	uc, tenders, _ := newTenderUseCase()
	tender, err := uc.Create(context.Background(), "supplies", "quarterly", "central", validDraftItems(), nil, 7)
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if tender.Status != model.TenderStatusActive {
		t.Fatalf("expected active status, got %s", tender.Status)
	}
	if tender.CreatedBy != 7 {
		t.Fatalf("unexpected creator: %d", tender.CreatedBy)
	}
	if tenders.Tender == nil {
		t.Fatal("expected tender to be persisted")
	}
	for _, item := range tender.Items {
		if item.ID == uuid.Nil {
			t.Fatal("expected item identifiers to be assigned")
		}
	}
	if tender.Items[1].Unit != model.UnitMeter {
		t.Fatalf("expected parsed unit meter, got %s", tender.Items[1].Unit)
	}
}

func TestTenderCloseRejectsPendingBidsFirst(t *testing.T) {
	uc, tenders, bids := newTenderUseCase()
	tender, err := uc.Create(context.Background(), "supplies", "quarterly", "central", validDraftItems(), nil, 1)
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}

	closed, err := uc.Close(context.Background(), tender.ID)
	if err != nil {
		t.Fatalf("close returned error: %v", err)
	}
	if closed.Status != model.TenderStatusClosed {
		t.Fatalf("expected closed status, got %s", closed.Status)
	}
	if len(bids.RejectCalls) != 1 {
		t.Fatalf("expected one reject sweep, got %d", len(bids.RejectCalls))
	}
	if bids.RejectCalls[0].Keep != nil {
		t.Fatal("expected no kept bid on close")
	}
	if len(tenders.Transitions) != 1 {
		t.Fatalf("expected one transition, got %d", len(tenders.Transitions))
	}
	tr := tenders.Transitions[0]
	if tr.From != model.TenderStatusActive || tr.To != model.TenderStatusClosed {
		t.Fatalf("unexpected transition %s -> %s", tr.From, tr.To)
	}
}

func TestTenderCloseMissing(t *testing.T) {
	uc, _, _ := newTenderUseCase()
	_, err := uc.Close(context.Background(), uuid.New())
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTenderCloseNonActive(t *testing.T) {
	uc, tenders, _ := newTenderUseCase()
	id := uuid.New()
	tenders.Tender = &model.Tender{ID: id, Status: model.TenderStatusAwarded}

	_, err := uc.Close(context.Background(), id)
	if !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestTenderCloseLostRace(t *testing.T) {
	uc, tenders, _ := newTenderUseCase()
	id := uuid.New()
	tenders.Tender = &model.Tender{ID: id, Status: model.TenderStatusActive}
	tenders.TransitionStatusFn = func(context.Context, uuid.UUID, model.TenderStatus, model.TenderStatus) (bool, error) {
		return false, nil
	}

	_, err := uc.Close(context.Background(), id)
	if !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}
