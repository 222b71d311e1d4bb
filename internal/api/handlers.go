package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"agencysite/internal/assistant"
	"agencysite/internal/audit"
	"agencysite/internal/auth"
	"agencysite/internal/booking"
	"agencysite/internal/content"
	"agencysite/internal/metrics"
	"agencysite/internal/users"

	"github.com/sirupsen/logrus"
)

const (
	tokenLifetime     = 24 * time.Hour
	minPasswordLength = 8
	maxBodyBytes      = 1 << 20
)

type Handler struct {
	userService      *users.Service
	contentService   *content.Service
	assistantService *assistant.Service
	bookingService   *booking.Service
	auditService     *audit.Service
	metrics          *metrics.Metrics
	jwtSigningKey    string
}

func NewHandler(
	userService *users.Service,
	contentService *content.Service,
	assistantService *assistant.Service,
	bookingService *booking.Service,
	auditService *audit.Service,
	m *metrics.Metrics,
	jwtKey string,
) *Handler {
	return &Handler{
		userService:      userService,
		contentService:   contentService,
		assistantService: assistantService,
		bookingService:   bookingService,
		auditService:     auditService,
		metrics:          m,
		jwtSigningKey:    jwtKey,
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorf("error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

func (h *Handler) RegisterWebUserHandler(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	if !content.ValidEmail(req.Email) {
		writeError(w, http.StatusBadRequest, "invalid email address")
		return
	}
	if len(req.Password) < minPasswordLength {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	user, err := h.userService.RegisterWebUser(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrUserAlreadyExists) {
			writeError(w, http.StatusConflict, "a user with this email already exists")
		} else {
			logrus.Errorf("error registering user '%s': %v", req.Email, err)
			writeError(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	})
}

func (h *Handler) AuthLoginHandler(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.userService.AuthenticateWebUser(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
		} else {
			logrus.Errorf("error authenticating user '%s': %v", req.Email, err)
			writeError(w, http.StatusInternalServerError, "authentication failed")
		}
		return
	}

	tokenString, err := auth.GenerateJWTToken(user.ID, user.Email, h.jwtSigningKey, tokenLifetime)
	if err != nil {
		logrus.Errorf("error generating JWT: %v", err)
		writeError(w, http.StatusInternalServerError, "could not issue token")
		return
	}

	logrus.Infof("user %s signed in", user.ID)
	writeJSON(w, http.StatusOK, LoginResponse{Token: tokenString})
}

// GetCurrentUserHandler runs behind auth.JWTMiddleware.
func (h *Handler) GetCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.userService.GetWebUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
		} else {
			writeError(w, http.StatusInternalServerError, "could not load user")
		}
		return
	}

	isAdmin, err := h.userService.IsAdmin(r.Context(), user.ID)
	if err != nil {
		logrus.Warnf("role lookup failed for user %s: %v", user.ID, err)
	}

	writeJSON(w, http.StatusOK, UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		IsAdmin:   isAdmin,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	})
}
