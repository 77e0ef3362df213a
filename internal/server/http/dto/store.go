package dto

// StoreItemResponse is one ledger line of a store.
type StoreItemResponse struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// StoreResponse represents a store ledger on the wire.
type StoreResponse struct {
	Name  string              `json:"name"`
	Items []StoreItemResponse `json:"items"`
}
