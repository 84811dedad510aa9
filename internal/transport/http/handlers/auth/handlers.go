package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"simpeg/internal/domain/auth"
	"simpeg/internal/platform/requestctx"
	"simpeg/internal/transport/http/api"
	"simpeg/internal/transport/http/middleware"
)

const tokenTTL = 8 * time.Hour

type Handler struct {
	Registry *auth.Registry
	Sessions *auth.Sessions
	Secret   string
}

func NewHandler(registry *auth.Registry, sessions *auth.Sessions, secret string) *Handler {
	return &Handler{Registry: registry, Sessions: sessions, Secret: secret}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.HandleLogin)
	r.Post("/auth/logout", h.HandleLogout)
	r.Get("/auth/users", h.HandleListUsers)
	r.Post("/auth/users", h.HandleCreateUser)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}

	account, err := h.Registry.Authenticate(payload.Username, payload.Password)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestctx.GetRequestID(r.Context()))
		return
	}

	sessionID, err := h.Sessions.Create(account.Username)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "session_error", "failed to start session", requestctx.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{
		Username:  account.Username,
		Role:      account.Role,
		SessionID: sessionID,
	}, tokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", requestctx.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"token": token,
		"user":  account,
	}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if user, ok := middleware.GetUser(r.Context()); ok {
		h.Sessions.Revoke(user.SessionID)
	}
	api.Success(w, map[string]string{"status": "logged_out"}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}
	if user.Role != auth.RoleAdmin {
		api.Fail(w, http.StatusForbidden, "forbidden", "admin role required", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, h.Registry.Accounts(), requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}
	if user.Role != auth.RoleAdmin {
		api.Fail(w, http.StatusForbidden, "forbidden", "admin role required", requestctx.GetRequestID(r.Context()))
		return
	}

	var payload createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}
	if strings.TrimSpace(payload.Username) == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "username and password are required", requestctx.GetRequestID(r.Context()))
		return
	}

	err := h.Registry.CreateAccount(payload.Username, payload.Password, payload.Role)
	switch {
	case errors.Is(err, auth.ErrDuplicateUsername):
		api.Fail(w, http.StatusConflict, "duplicate_username", "username already exists", requestctx.GetRequestID(r.Context()))
		return
	case errors.Is(err, auth.ErrInvalidRole):
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "role must be Admin, Supervisor or User", requestctx.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "hash_error", "failed to create account", requestctx.GetRequestID(r.Context()))
		return
	}

	api.Created(w, auth.Account{Username: payload.Username, Role: payload.Role}, requestctx.GetRequestID(r.Context()))
}
