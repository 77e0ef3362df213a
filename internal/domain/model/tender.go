package model

import (
	"time"

	"github.com/google/uuid"
)

// TenderStatus describes tender lifecycle.
type TenderStatus string

const (
	TenderStatusActive  TenderStatus = "active"
	TenderStatusClosed  TenderStatus = "closed"
	TenderStatusAwarded TenderStatus = "awarded"
)

// Unit is the measurement unit of a requested item.
type Unit string

const (
	UnitKilogram Unit = "kg"
	UnitPiece    Unit = "piece"
	UnitMeter    Unit = "meter"
	UnitLiter    Unit = "liter"
	UnitBox      Unit = "box"
)

// ParseUnit validates a raw unit string against the closed set.
func ParseUnit(raw string) (Unit, bool) {
	switch Unit(raw) {
	case UnitKilogram, UnitPiece, UnitMeter, UnitLiter, UnitBox:
		return Unit(raw), true
	}
	return "", false
}

// TenderItem is a single requested material line. The item list is fixed
// once the tender is created.
type TenderItem struct {
	ID       uuid.UUID
	Name     string
	Quantity int64
	Unit     Unit
}

// Tender describes a published request for materials open for bidding.
type Tender struct {
	ID          uuid.UUID
	Title       string
	Description string
	Items       []TenderItem
	StoreName   string
	Status      TenderStatus
	Deadline    *time.Time
	CreatedBy   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemByID returns the tender item with the given identifier.
func (t *Tender) ItemByID(id uuid.UUID) (TenderItem, bool) {
	for _, item := range t.Items {
		if item.ID == id {
			return item, true
		}
	}
	return TenderItem{}, false
}

// HasItemNamed reports whether the tender requests an item with that name.
func (t *Tender) HasItemNamed(name string) bool {
	for _, item := range t.Items {
		if item.Name == name {
			return true
		}
	}
	return false
}
