package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Admins() AdminRepository
	Tenders() TenderRepository
	Bids() BidRepository
	Products() ProductRepository
	Stores() StoreRepository
}
