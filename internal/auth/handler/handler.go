// Package handler serves registration, login and the caller's profile.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"callerid/internal/auth/models"
	idmodels "callerid/internal/identity/models"
	id "callerid/pkg/domain"
	dErrors "callerid/pkg/domain-errors"
	"callerid/pkg/platform/httputil"
	"callerid/pkg/requestcontext"
)

type Service interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*idmodels.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (string, error)
	Profile(ctx context.Context, userID id.UserID) (*idmodels.User, error)
}

type Handler struct {
	service  Service
	logger   *slog.Logger
	tokenTTL int
}

// New builds the handler. tokenTTLSeconds is echoed as expires_in on login.
func New(service Service, logger *slog.Logger, tokenTTLSeconds int) *Handler {
	return &Handler{service: service, logger: logger, tokenTTL: tokenTTLSeconds}
}

// RegisterPublic mounts the routes that need no token.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)
}

// RegisterProtected mounts the routes behind RequireAuth.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Get("/profile", h.HandleProfile)
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.fail(r, "register", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, models.ToUserResponse(user))
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	token, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.fail(r, "login", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.LoginResponse{
		Message:   "Login successful",
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: h.tokenTTL,
	})
}

func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	userID := requestcontext.UserID(r.Context())
	if userID.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}
	user, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		h.fail(r, "profile", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.ToUserResponse(user))
}

func (h *Handler) fail(r *http.Request, op string, err error) {
	code := dErrors.CodeOf(err)
	if code != dErrors.CodeInternal && code != dErrors.CodeUnavailable {
		return
	}
	h.logger.ErrorContext(r.Context(), op+" failed",
		"error", err,
		"request_id", requestcontext.RequestID(r.Context()),
	)
}
