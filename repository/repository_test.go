package repository_test

import (
	"context"
	"testing"

	"github.com/PraneethJosyula/Student-MarketPlace/models"
	"github.com/PraneethJosyula/Student-MarketPlace/repository"

	"github.com/stretchr/testify/require"
)

func newBuyer() models.User {
	return models.User{ID: 2, Name: "Sarah Grad", Email: "sarah@university.edu", Role: models.RoleStudent}
}

func TestDefaultSeed(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository(repository.DefaultSeed())

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 4)
	require.Equal(t, models.RoleAdmin, users[3].Role)

	listings, err := repo.ListListings(ctx)
	require.NoError(t, err)
	require.Len(t, listings, 4)
	for i, l := range listings {
		require.Equal(t, i+1, l.ID)
		require.Equal(t, models.StatusAvailable, l.Status)
	}

	// The seeded transaction points at listing 5, which does not exist in
	// the listings collection. That is fixture data, not an error.
	trans, err := repo.ListTransactionsByBuyer(ctx, 2)
	require.NoError(t, err)
	require.Len(t, trans, 1)
	require.Equal(t, 1, trans[0].ID)
	require.Equal(t, 5, trans[0].ListingID)
	_, err = repo.GetListingByID(ctx, trans[0].ListingID)
	require.ErrorIs(t, err, models.ErrListingNotFound)
}

func TestInsertListing_AssignsMonotonicIDs(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository(repository.DefaultSeed())

	first, err := repo.InsertListing(ctx, models.Listing{
		Title:       "Book",
		Description: "desc",
		Price:       10,
		Seller:      "John Student",
		SellerID:    1,
	})
	require.NoError(t, err)
	require.Equal(t, 5, first.ID)
	require.Equal(t, models.StatusAvailable, first.Status)
	require.False(t, first.CreatedAt.IsZero())

	// Deleting a listing must not free its id for reuse.
	require.NoError(t, repo.DeleteListing(ctx, first.ID))

	second, err := repo.InsertListing(ctx, models.Listing{
		Title:       "Lamp",
		Description: "desc",
		Price:       20,
		Seller:      "John Student",
		SellerID:    1,
	})
	require.NoError(t, err)
	require.Equal(t, 6, second.ID)
}

func TestNewMemoryRepository_BumpsCountersPastSeed(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository(repository.Seed{
		Listings: []models.Listing{
			{ID: 7, Title: "Desk", SellerID: 1, Status: models.StatusAvailable},
		},
	})

	listing, err := repo.InsertListing(ctx, models.Listing{Title: "Chair", SellerID: 1})
	require.NoError(t, err)
	require.Equal(t, 8, listing.ID)
}

func TestPurchaseListing(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository(repository.DefaultSeed())
	buyer := newBuyer()

	trans, err := repo.PurchaseListing(ctx, 1, buyer)
	require.NoError(t, err)
	require.Equal(t, 2, trans.ID)
	require.Equal(t, 1, trans.ListingID)
	require.Equal(t, "Calculus Textbook", trans.ListingTitle)
	require.Equal(t, "Sarah Grad", trans.Buyer)
	require.Equal(t, 2, trans.BuyerID)
	require.Equal(t, "John Student", trans.Seller)
	require.Equal(t, 1, trans.SellerID)
	require.Equal(t, float64(45), trans.Price)
	require.False(t, trans.Date.IsZero())

	sold, err := repo.GetListingByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, models.StatusSold, sold.Status)

	purchases, err := repo.ListTransactionsByBuyer(ctx, buyer.ID)
	require.NoError(t, err)
	require.Len(t, purchases, 2)
}

func TestPurchaseListing_SecondPurchaseFails(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository(repository.DefaultSeed())
	buyer := newBuyer()

	_, err := repo.PurchaseListing(ctx, 1, buyer)
	require.NoError(t, err)

	mike := models.User{ID: 3, Name: "Mike Senior", Role: models.RoleStudent}
	_, err = repo.PurchaseListing(ctx, 1, mike)
	require.ErrorIs(t, err, models.ErrAlreadySold)

	// The failed attempt leaves the log untouched.
	purchases, err := repo.ListTransactionsByBuyer(ctx, mike.ID)
	require.NoError(t, err)
	require.Empty(t, purchases)
}

func TestPurchaseListing_OwnListing(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository(repository.DefaultSeed())
	john := models.User{ID: 1, Name: "John Student", Role: models.RoleStudent}

	_, err := repo.PurchaseListing(ctx, 4, john)
	require.ErrorIs(t, err, models.ErrSelfPurchase)

	listing, err := repo.GetListingByID(ctx, 4)
	require.NoError(t, err)
	require.Equal(t, models.StatusAvailable, listing.Status)
}

func TestPurchaseListing_Missing(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository(repository.DefaultSeed())

	_, err := repo.PurchaseListing(ctx, 42, newBuyer())
	require.ErrorIs(t, err, models.ErrListingNotFound)
}

func TestDeleteListing_KeepsTransactions(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository(repository.DefaultSeed())
	buyer := newBuyer()

	trans, err := repo.PurchaseListing(ctx, 1, buyer)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteListing(ctx, 1))
	_, err = repo.GetListingByID(ctx, 1)
	require.ErrorIs(t, err, models.ErrListingNotFound)

	purchases, err := repo.ListTransactionsByBuyer(ctx, buyer.ID)
	require.NoError(t, err)
	require.Len(t, purchases, 2)
	require.Equal(t, trans.ID, purchases[1].ID)
	require.Equal(t, 1, purchases[1].ListingID)
}

func TestDeleteListing_Missing(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository(repository.DefaultSeed())

	err := repo.DeleteListing(ctx, 42)
	require.ErrorIs(t, err, models.ErrListingNotFound)
}

func TestListListings_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository(repository.DefaultSeed())

	listings, err := repo.ListListings(ctx)
	require.NoError(t, err)
	listings[0].Status = models.StatusSold
	listings[0].Title = "tampered"

	stored, err := repo.GetListingByID(ctx, listings[0].ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusAvailable, stored.Status)
	require.Equal(t, "Calculus Textbook", stored.Title)
}

func TestListListingsBySeller(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository(repository.DefaultSeed())

	listings, err := repo.ListListingsBySeller(ctx, 1)
	require.NoError(t, err)
	require.Len(t, listings, 2)
	for _, l := range listings {
		require.Equal(t, 1, l.SellerID)
	}
}
