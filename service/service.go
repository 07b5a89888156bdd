package service

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/PraneethJosyula/Student-MarketPlace/models"

	"github.com/golang-jwt/jwt/v4"
)

//go:generate mockgen -destination=./mocks/mock_repository.go -package=mocks github.com/PraneethJosyula/Student-MarketPlace/service Repository

type Repository interface {
	GetUserByID(ctx context.Context, id int) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	GetListingByID(ctx context.Context, id int) (models.Listing, error)
	ListListings(ctx context.Context) ([]models.Listing, error)
	ListListingsBySeller(ctx context.Context, sellerID int) ([]models.Listing, error)
	InsertListing(ctx context.Context, listing models.Listing) (models.Listing, error)
	PurchaseListing(ctx context.Context, listingID int, buyer models.User) (models.Transaction, error)
	DeleteListing(ctx context.Context, listingID int) error
	ListTransactionsByBuyer(ctx context.Context, buyerID int) ([]models.Transaction, error)
}

type Service struct {
	repo      Repository
	jwtSecret string
}

func NewService(repo Repository, jwtSecret string) Service {
	return Service{
		repo:      repo,
		jwtSecret: jwtSecret,
	}
}

const dateLayout = "2006-01-02"

type CreateListingInput struct {
	Title       string
	Description string
	Price       string
}

type UserInfo struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type ListingInfo struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Seller      string  `json:"seller"`
	SellerID    int     `json:"sellerId"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
}

type TransactionInfo struct {
	ID           int     `json:"id"`
	ListingID    int     `json:"listingId"`
	ListingTitle string  `json:"listingTitle"`
	Buyer        string  `json:"buyer"`
	BuyerID      int     `json:"buyerId"`
	Seller       string  `json:"seller"`
	SellerID     int     `json:"sellerId"`
	Price        float64 `json:"price"`
	Date         string  `json:"date"`
}

type DashboardResponse struct {
	Listings  []ListingInfo     `json:"listings"`
	Purchases []TransactionInfo `json:"purchases"`
}

// StartSession exchanges a roster user id for a session token. There are no
// credentials: picking an identity is all the demo's "login" amounts to.
func (s Service) StartSession(
	ctx context.Context,
	userID int,
) (string, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return generateSessionToken(user, s.jwtSecret)
}

func (s Service) UserByID(
	ctx context.Context,
	id int,
) (models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s Service) Users(ctx context.Context) ([]UserInfo, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	var result []UserInfo
	for _, u := range users {
		result = append(result, NewUserInfo(u))
	}
	return result, nil
}

// CreateListing validates in a fixed order: missing acting user first, then
// empty fields, then an unparsable or non-positive price.
func (s Service) CreateListing(
	ctx context.Context,
	input CreateListingInput,
	actor *models.User,
) (models.Listing, error) {
	if actor == nil {
		return models.Listing{}, models.ErrNoActiveUser
	}
	if input.Title == "" || input.Description == "" || input.Price == "" {
		return models.Listing{}, models.ErrMissingField
	}
	price, err := strconv.ParseFloat(input.Price, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return models.Listing{}, models.ErrInvalidPrice
	}
	listing := models.Listing{
		Title:       input.Title,
		Description: input.Description,
		Price:       price,
		Seller:      actor.Name,
		SellerID:    actor.ID,
	}
	return s.repo.InsertListing(ctx, listing)
}

// Purchase marks the listing sold and records the transaction. The
// repository repeats the seller/status checks under its lock; the early
// checks here keep the validation order observable and the error immediate.
func (s Service) Purchase(
	ctx context.Context,
	listingID int,
	actor *models.User,
) (models.Transaction, error) {
	if actor == nil {
		return models.Transaction{}, models.ErrNoActiveUser
	}
	listing, err := s.repo.GetListingByID(ctx, listingID)
	if err != nil {
		return models.Transaction{}, err
	}
	if listing.SellerID == actor.ID {
		return models.Transaction{}, models.ErrSelfPurchase
	}
	return s.repo.PurchaseListing(ctx, listingID, *actor)
}

// DeleteListing is allowed for admins and for the listing's own seller.
// The transaction log is never touched.
func (s Service) DeleteListing(
	ctx context.Context,
	listingID int,
	actor *models.User,
) error {
	if actor == nil {
		return models.ErrNoActiveUser
	}
	listing, err := s.repo.GetListingByID(ctx, listingID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && listing.SellerID != actor.ID {
		return models.ErrNotAuthorized
	}
	return s.repo.DeleteListing(ctx, listingID)
}

func (s Service) Listings(ctx context.Context) ([]ListingInfo, error) {
	listings, err := s.repo.ListListings(ctx)
	if err != nil {
		return nil, err
	}
	var result []ListingInfo
	for _, l := range listings {
		result = append(result, NewListingInfo(l))
	}
	return result, nil
}

func (s Service) Dashboard(
	ctx context.Context,
	userID int,
) (DashboardResponse, error) {
	listings, err := s.repo.ListListingsBySeller(ctx, userID)
	if err != nil {
		return DashboardResponse{}, err
	}
	transactions, err := s.repo.ListTransactionsByBuyer(ctx, userID)
	if err != nil {
		return DashboardResponse{}, err
	}

	resp := DashboardResponse{
		Listings:  []ListingInfo{},
		Purchases: []TransactionInfo{},
	}
	for _, l := range listings {
		resp.Listings = append(resp.Listings, NewListingInfo(l))
	}
	for _, t := range transactions {
		resp.Purchases = append(resp.Purchases, NewTransactionInfo(t))
	}
	return resp, nil
}

func NewUserInfo(u models.User) UserInfo {
	return UserInfo{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
}

func NewListingInfo(l models.Listing) ListingInfo {
	return ListingInfo{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Price:       l.Price,
		Seller:      l.Seller,
		SellerID:    l.SellerID,
		Status:      string(l.Status),
		CreatedAt:   l.CreatedAt.Format(dateLayout),
	}
}

func NewTransactionInfo(t models.Transaction) TransactionInfo {
	return TransactionInfo{
		ID:           t.ID,
		ListingID:    t.ListingID,
		ListingTitle: t.ListingTitle,
		Buyer:        t.Buyer,
		BuyerID:      t.BuyerID,
		Seller:       t.Seller,
		SellerID:     t.SellerID,
		Price:        t.Price,
		Date:         t.Date.Format(dateLayout),
	}
}

func generateSessionToken(
	user models.User,
	secret string,
) (string, error) {
	token := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		jwt.MapClaims{
			"user_id": user.ID,
			"name":    user.Name,
			"exp":     time.Now().Add(24 * time.Hour).Unix(),
		},
	)
	tokenStr, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}
	return tokenStr, nil
}
