package repository

import (
	"time"

	"github.com/PraneethJosyula/Student-MarketPlace/models"
)

// Seed is the fixed dataset the marketplace boots from. The counters must
// point past the highest seeded ids; NewMemoryRepository enforces that.
type Seed struct {
	Users             []models.User
	Listings          []models.Listing
	Transactions      []models.Transaction
	NextListingID     int
	NextTransactionID int
}

// DefaultSeed returns the demo roster and inventory. Note transaction 1
// references listing 5, which is not in the listings collection: the
// transaction log deliberately outlives listings.
func DefaultSeed() Seed {
	return Seed{
		Users: []models.User{
			{ID: 1, Name: "John Student", Email: "john@university.edu", Role: models.RoleStudent},
			{ID: 2, Name: "Sarah Grad", Email: "sarah@university.edu", Role: models.RoleStudent},
			{ID: 3, Name: "Mike Senior", Email: "mike@university.edu", Role: models.RoleStudent},
			{ID: 4, Name: "Admin User", Email: "admin@university.edu", Role: models.RoleAdmin},
		},
		Listings: []models.Listing{
			{
				ID:          1,
				Title:       "Calculus Textbook",
				Description: "Calculus: Early Transcendentals, 8th Edition. Great condition, barely used.",
				Price:       45,
				Seller:      "John Student",
				SellerID:    1,
				Status:      models.StatusAvailable,
				CreatedAt:   seedDate(2024, time.January, 15),
			},
			{
				ID:          2,
				Title:       "MacBook Air 2020",
				Description: "13-inch MacBook Air with M1 chip. Perfect for coding and school work.",
				Price:       800,
				Seller:      "Sarah Grad",
				SellerID:    2,
				Status:      models.StatusAvailable,
				CreatedAt:   seedDate(2024, time.January, 10),
			},
			{
				ID:          3,
				Title:       "Scientific Calculator",
				Description: "TI-84 Plus calculator. Essential for math and science courses.",
				Price:       75,
				Seller:      "Mike Senior",
				SellerID:    3,
				Status:      models.StatusAvailable,
				CreatedAt:   seedDate(2024, time.January, 12),
			},
			{
				ID:          4,
				Title:       "Bike Lock",
				Description: "Heavy-duty U-lock for campus bike security.",
				Price:       25,
				Seller:      "John Student",
				SellerID:    1,
				Status:      models.StatusAvailable,
				CreatedAt:   seedDate(2024, time.January, 8),
			},
		},
		Transactions: []models.Transaction{
			{
				ID:           1,
				ListingID:    5,
				ListingTitle: "Coffee Mug Set",
				Buyer:        "Sarah Grad",
				BuyerID:      2,
				Seller:       "Mike Senior",
				SellerID:     3,
				Price:        15,
				Date:         seedDate(2024, time.January, 5),
			},
		},
		NextListingID:     5,
		NextTransactionID: 2,
	}
}

func seedDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
