package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry tracked by stock quantity. The catalog is an
// external aggregate; this core only adjusts stock by name.
type Product struct {
	Name  string
	Stock decimal.Decimal
}

// StoreItem is one ledger line of a store.
type StoreItem struct {
	Name     string
	Quantity int64
}

// Store is a named location holding item quantities. Stores are looked up
// or created lazily during reconciliation.
type Store struct {
	ID        int64
	Name      string
	Items     []StoreItem
	CreatedAt time.Time
}

// AwardItem is one line of the quantity list supplied with an award request.
type AwardItem struct {
	Name     string
	Quantity int64
}

// AwardResult reports the outcome of a completed award protocol.
// UnresolvedItems lists item names that had no matching catalog product;
// their presence is a warning, not a failure.
type AwardResult struct {
	Tender          *Tender
	Bid             *Bid
	UnresolvedItems []string
}
