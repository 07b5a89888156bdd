package repository

import (
	"context"
	"sync"
	"time"

	"github.com/PraneethJosyula/Student-MarketPlace/models"
)

// MemoryRepository owns every mutable collection of the marketplace: the
// user roster, the listings, the transaction log and both id counters.
// All state is process-local and is rebuilt from a Seed on startup.
type MemoryRepository struct {
	mu                sync.Mutex
	users             []models.User
	listings          []models.Listing
	transactions      []models.Transaction
	nextListingID     int
	nextTransactionID int
}

func NewMemoryRepository(seed Seed) *MemoryRepository {
	r := &MemoryRepository{
		users:             append([]models.User(nil), seed.Users...),
		listings:          append([]models.Listing(nil), seed.Listings...),
		transactions:      append([]models.Transaction(nil), seed.Transactions...),
		nextListingID:     seed.NextListingID,
		nextTransactionID: seed.NextTransactionID,
	}
	// Counters always start past the seed's highest ids, so no id is ever
	// handed out twice.
	for _, l := range r.listings {
		if l.ID >= r.nextListingID {
			r.nextListingID = l.ID + 1
		}
	}
	for _, t := range r.transactions {
		if t.ID >= r.nextTransactionID {
			r.nextTransactionID = t.ID + 1
		}
	}
	return r
}

func (r *MemoryRepository) GetUserByID(
	ctx context.Context,
	id int,
) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, models.ErrUserNotFound
}

func (r *MemoryRepository) ListUsers(
	ctx context.Context,
) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.User(nil), r.users...), nil
}

func (r *MemoryRepository) GetListingByID(
	ctx context.Context,
	id int,
) (models.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.listings {
		if l.ID == id {
			return l, nil
		}
	}
	return models.Listing{}, models.ErrListingNotFound
}

func (r *MemoryRepository) ListListings(
	ctx context.Context,
) ([]models.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Listing(nil), r.listings...), nil
}

func (r *MemoryRepository) ListListingsBySeller(
	ctx context.Context,
	sellerID int,
) ([]models.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.Listing
	for _, l := range r.listings {
		if l.SellerID == sellerID {
			result = append(result, l)
		}
	}
	return result, nil
}

// InsertListing assigns the next listing id and the creation date; the
// caller supplies everything else already validated.
func (r *MemoryRepository) InsertListing(
	ctx context.Context,
	listing models.Listing,
) (models.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	listing.ID = r.nextListingID
	r.nextListingID++
	listing.Status = models.StatusAvailable
	listing.CreatedAt = time.Now()
	r.listings = append(r.listings, listing)
	return listing, nil
}

// PurchaseListing flips the listing to sold and appends the transaction
// under one lock, so no reader ever sees one without the other. The seller
// and status checks are repeated here because they must still hold at the
// moment of the flip, not just when the caller last looked.
func (r *MemoryRepository) PurchaseListing(
	ctx context.Context,
	listingID int,
	buyer models.User,
) (models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.listings {
		if l.ID != listingID {
			continue
		}
		if l.SellerID == buyer.ID {
			return models.Transaction{}, models.ErrSelfPurchase
		}
		if l.Status != models.StatusAvailable {
			return models.Transaction{}, models.ErrAlreadySold
		}
		r.listings[i].Status = models.StatusSold
		trans := models.Transaction{
			ID:           r.nextTransactionID,
			ListingID:    l.ID,
			ListingTitle: l.Title,
			Buyer:        buyer.Name,
			BuyerID:      buyer.ID,
			Seller:       l.Seller,
			SellerID:     l.SellerID,
			Price:        l.Price,
			Date:         time.Now(),
		}
		r.nextTransactionID++
		r.transactions = append(r.transactions, trans)
		return trans, nil
	}
	return models.Transaction{}, models.ErrListingNotFound
}

// DeleteListing removes the listing permanently. Transactions that
// reference it stay in the log untouched.
func (r *MemoryRepository) DeleteListing(
	ctx context.Context,
	listingID int,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.listings {
		if l.ID == listingID {
			r.listings = append(r.listings[:i], r.listings[i+1:]...)
			return nil
		}
	}
	return models.ErrListingNotFound
}

func (r *MemoryRepository) ListTransactionsByBuyer(
	ctx context.Context,
	buyerID int,
) ([]models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.Transaction
	for _, t := range r.transactions {
		if t.BuyerID == buyerID {
			result = append(result, t)
		}
	}
	return result, nil
}
