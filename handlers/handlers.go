package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/PraneethJosyula/Student-MarketPlace/models"
	"github.com/PraneethJosyula/Student-MarketPlace/service"

	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	svc       service.Service
	jwtSecret string
	logger    *zap.Logger
}

func NewHandler(svc service.Service, jwtSecret string, logger *zap.Logger) Handler {
	return Handler{
		svc:       svc,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

type SessionRequest struct {
	UserID int `json:"userId"`
}

type SessionResponse struct {
	Token string           `json:"token"`
	User  service.UserInfo `json:"user"`
}

type CreateListingRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

type ErrorResponse struct {
	Errors string `json:"errors"`
}

// SessionHandler is the user selector: it trades a roster user id for a
// session token. No password involved.
func (h Handler) SessionHandler(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	token, err := h.svc.StartSession(r.Context(), req.UserID)
	if err != nil {
		respondWithError(w, statusForError(err), err.Error())
		return
	}
	user, err := h.svc.UserByID(r.Context(), req.UserID)
	if err != nil {
		respondWithError(w, statusForError(err), err.Error())
		return
	}
	h.logger.Info("session started", zap.Int("user_id", user.ID), zap.String("role", string(user.Role)))
	respondWithJSON(w, http.StatusOK, SessionResponse{
		Token: token,
		User:  service.NewUserInfo(user),
	})
}

func (h Handler) UsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.Users(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, users)
}

func (h Handler) ListingsHandler(w http.ResponseWriter, r *http.Request) {
	listings, err := h.svc.Listings(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if listings == nil {
		listings = []service.ListingInfo{}
	}
	respondWithJSON(w, http.StatusOK, listings)
}

func (h Handler) CreateListingHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	actor := currentUser(r.Context())
	listing, err := h.svc.CreateListing(r.Context(), service.CreateListingInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
	}, actor)
	if err != nil {
		respondWithError(w, statusForError(err), err.Error())
		return
	}
	h.logger.Info("listing created",
		zap.Int("listing_id", listing.ID),
		zap.Int("seller_id", listing.SellerID),
	)
	respondWithJSON(w, http.StatusCreated, service.NewListingInfo(listing))
}

func (h Handler) BuyHandler(w http.ResponseWriter, r *http.Request) {
	listingID, ok := listingIDFromPath(w, r)
	if !ok {
		return
	}
	actor := currentUser(r.Context())
	trans, err := h.svc.Purchase(r.Context(), listingID, actor)
	if err != nil {
		respondWithError(w, statusForError(err), err.Error())
		return
	}
	h.logger.Info("listing purchased",
		zap.Int("listing_id", trans.ListingID),
		zap.Int("transaction_id", trans.ID),
		zap.Int("buyer_id", trans.BuyerID),
	)
	respondWithJSON(w, http.StatusOK, service.NewTransactionInfo(trans))
}

func (h Handler) DeleteListingHandler(w http.ResponseWriter, r *http.Request) {
	listingID, ok := listingIDFromPath(w, r)
	if !ok {
		return
	}
	actor := currentUser(r.Context())
	if err := h.svc.DeleteListing(r.Context(), listingID, actor); err != nil {
		respondWithError(w, statusForError(err), err.Error())
		return
	}
	h.logger.Info("listing deleted", zap.Int("listing_id", listingID))
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h Handler) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	actor := currentUser(r.Context())
	if actor == nil {
		respondWithError(w, http.StatusUnauthorized, models.ErrNoActiveUser.Error())
		return
	}
	dashboard, err := h.svc.Dashboard(r.Context(), actor.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, dashboard)
}

// SessionMiddleware resolves the acting user when a session token is
// present. A request without a token is still served: the engine treats
// the missing user as its own validation failure.
func (h Handler) SessionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next(w, r)
			return
		}

		const bearerPrefix = "Bearer "
		if len(authHeader) <= len(bearerPrefix) {
			respondWithError(w, http.StatusUnauthorized, "invalid token format")
			return
		}

		tokenStr := authHeader[len(bearerPrefix):]
		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			return []byte(h.jwtSecret), nil
		})
		if err != nil || !token.Valid {
			respondWithError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "invalid token claims")
			return
		}
		uid, err := strconv.Atoi(stringify(claims["user_id"]))
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "invalid user id in token")
			return
		}
		user, err := h.svc.UserByID(r.Context(), uid)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "unknown session user")
			return
		}
		ctx := context.WithValue(r.Context(), "current_user", user)
		next(w, r.WithContext(ctx))
	}
}

func currentUser(ctx context.Context) *models.User {
	user, ok := ctx.Value("current_user").(models.User)
	if !ok {
		return nil
	}
	return &user
}

func listingIDFromPath(w http.ResponseWriter, r *http.Request) (int, bool) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid listing id")
		return 0, false
	}
	return id, true
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrNoActiveUser):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrMissingField),
		errors.Is(err, models.ErrInvalidPrice):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrSelfPurchase),
		errors.Is(err, models.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, models.ErrListingNotFound),
		errors.Is(err, models.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrAlreadySold):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(ErrorResponse{Errors: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func stringify(val interface{}) string {
	switch v := val.(type) {
	case string:
		return v
	case float64:
		return strconv.Itoa(int(v))
	default:
		return ""
	}
}
