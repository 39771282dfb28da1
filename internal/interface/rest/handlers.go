package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"travelbook-service/internal/domain/entity"
	"travelbook-service/internal/domain/repository"
	"travelbook-service/pkg/logger"
	"travelbook-service/pkg/metrics"
)

// AccountService is the slice of the account manager the handlers consume.
type AccountService interface {
	Login(ctx context.Context, username, password string) (map[string]interface{}, error)
	CreateLogin(ctx context.Context, username, password string, durability repository.DurabilityLevel) (*entity.Result, error)
}

// BookingService is the slice of the booking manager the handlers consume.
type BookingService interface {
	RegisterFlightForUser(ctx context.Context, username string, newFlights []entity.Document) (*entity.Result, error)
	GetFlightsForUser(ctx context.Context, username string) ([]entity.Document, error)
}

// TokenVerifier checks a bearer token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Handler exposes the account and booking operations over JSON.
type Handler struct {
	accounts   AccountService
	bookings   BookingService
	verifier   TokenVerifier
	durability repository.DurabilityLevel
	metrics    *metrics.Metrics
	logger     logger.Logger
}

// NewHandler creates a new REST handler. durability is the default level
// applied to signup writes when the request does not choose one.
func NewHandler(
	accounts AccountService,
	bookings BookingService,
	verifier TokenVerifier,
	durability repository.DurabilityLevel,
	m *metrics.Metrics,
	logger logger.Logger,
) *Handler {
	return &Handler{
		accounts:   accounts,
		bookings:   bookings,
		verifier:   verifier,
		durability: durability,
		metrics:    m,
		logger:     logger,
	}
}

// Register mounts the API routes on a mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/user/login", h.handleLogin)
	mux.HandleFunc("POST /api/user/signup", h.handleSignup)
	mux.HandleFunc("GET /api/user/{username}/flights", h.handleGetFlights)
	mux.HandleFunc("PUT /api/user/{username}/flights", h.handleBookFlights)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	defer h.observe(time.Now())

	var req jsonCredentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	data, err := h.accounts.Login(r.Context(), req.User, req.Password)
	if err != nil {
		h.metrics.LoginAttempts.WithLabelValues("failure").Inc()
		if errors.Is(err, entity.ErrAuthenticationFailed) {
			writeFailure(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.fail(w, "login", err)
		return
	}

	h.metrics.LoginAttempts.WithLabelValues("success").Inc()
	writeData(w, http.StatusOK, data)
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	defer h.observe(time.Now())

	var req jsonCredentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	durability := h.durability
	if raw := r.URL.Query().Get("durability"); raw != "" {
		parsed, err := repository.ParseDurability(raw)
		if err != nil {
			writeFailure(w, http.StatusBadRequest, err.Error())
			return
		}
		durability = parsed
	}

	result, err := h.accounts.CreateLogin(r.Context(), req.User, req.Password, durability)
	if err != nil {
		if errors.Is(err, entity.ErrAccountCreationFailed) {
			writeFailure(w, http.StatusConflict, entity.ErrAccountCreationFailed.Error())
			return
		}
		h.fail(w, "signup", err)
		return
	}

	h.metrics.AccountsCreated.Inc()
	writeData(w, http.StatusCreated, result.Data, result.Narration)
}

func (h *Handler) handleGetFlights(w http.ResponseWriter, r *http.Request) {
	defer h.observe(time.Now())

	username := r.PathValue("username")
	if !h.authorized(w, r, username) {
		return
	}

	flights, err := h.bookings.GetFlightsForUser(r.Context(), username)
	if err != nil {
		h.fail(w, "getFlights", err)
		return
	}
	writeData(w, http.StatusOK, flights)
}

func (h *Handler) handleBookFlights(w http.ResponseWriter, r *http.Request) {
	defer h.observe(time.Now())

	username := r.PathValue("username")
	if !h.authorized(w, r, username) {
		return
	}

	var req jsonBookFlightReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.bookings.RegisterFlightForUser(r.Context(), username, req.Flights)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrUserNotFound):
			writeFailure(w, http.StatusNotFound, err.Error())
		case errors.Is(err, entity.ErrInvalidPayload), errors.Is(err, entity.ErrInvalidFlightPayload):
			writeFailure(w, http.StatusBadRequest, err.Error())
		default:
			h.fail(w, "bookFlights", err)
		}
		return
	}

	if added, ok := result.Data["added"].([]entity.Document); ok {
		h.metrics.FlightsBooked.Add(float64(len(added)))
	}
	writeData(w, http.StatusOK, result.Data, result.Narration)
}

// authorized checks that the bearer token's subject matches the username
// addressed by the request path.
func (h *Handler) authorized(w http.ResponseWriter, r *http.Request, username string) bool {
	raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if raw == "" || raw == r.Header.Get("Authorization") {
		writeFailure(w, http.StatusUnauthorized, "authorization token required")
		return false
	}

	subject, err := h.verifier.Verify(raw)
	if err != nil || subject != username {
		writeFailure(w, http.StatusUnauthorized, "invalid or expired token")
		return false
	}
	return true
}

func (h *Handler) fail(w http.ResponseWriter, operation string, err error) {
	h.logger.Error("Request failed", "operation", operation, "error", err)
	h.metrics.ErrorsCount.WithLabelValues(operation).Inc()
	writeFailure(w, http.StatusInternalServerError, err.Error())
}

func (h *Handler) observe(start time.Time) {
	h.metrics.RequestDuration.Observe(time.Since(start).Seconds())
}
