package models

import "time"

type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

type ListingStatus string

const (
	StatusAvailable ListingStatus = "available"
	StatusSold      ListingStatus = "sold"
)

type User struct {
	ID    int
	Name  string
	Email string
	Role  Role
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Listing keeps a denormalized copy of the seller's name next to the seller
// id, so historical state stays readable independent of the roster.
type Listing struct {
	ID          int
	Title       string
	Description string
	Price       float64
	Seller      string
	SellerID    int
	Status      ListingStatus
	CreatedAt   time.Time
}

// Transaction is an append-only record of a completed purchase. It carries
// its own copies of the listing title and both party names; deleting the
// listing later never invalidates it.
type Transaction struct {
	ID           int
	ListingID    int
	ListingTitle string
	Buyer        string
	BuyerID      int
	Seller       string
	SellerID     int
	Price        float64
	Date         time.Time
}
