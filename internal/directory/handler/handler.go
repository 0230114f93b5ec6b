// Package handler exposes the directory resolver over HTTP. Every route
// expects the auth middleware to have placed the caller on the context.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"callerid/internal/directory/models"
	idmodels "callerid/internal/identity/models"
	id "callerid/pkg/domain"
	dErrors "callerid/pkg/domain-errors"
	"callerid/pkg/platform/httputil"
	"callerid/pkg/requestcontext"
)

// Service is the directory behaviour the handler needs.
type Service interface {
	SearchByName(ctx context.Context, requesterID id.UserID, pattern string) ([]models.NameMatch, error)
	SearchByPhone(ctx context.Context, requesterID id.UserID, phone string) (*models.PhoneLookup, error)
	FetchByID(ctx context.Context, requesterID, targetID id.UserID) (*models.Profile, error)
	ReportSpam(ctx context.Context, requesterID id.UserID, phone string) (*idmodels.SpamReport, error)
	AddContact(ctx context.Context, requesterID id.UserID, name, phone string) (*idmodels.Contact, error)
	ListContacts(ctx context.Context, requesterID id.UserID) ([]*idmodels.Contact, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the directory routes. Static paths are registered before
// the {id} catch so chi matches them first.
func (h *Handler) Register(r chi.Router) {
	r.Get("/search", h.HandleSearchByName)
	r.Get("/search/phone", h.HandleSearchByPhone)
	r.Post("/report", h.HandleReportSpam)
	r.Post("/contacts", h.HandleAddContact)
	r.Get("/contacts", h.HandleListContacts)
	r.Get("/{id}", h.HandleFetchByID)
}

// requester returns the authenticated caller or writes an error.
func (h *Handler) requester(w http.ResponseWriter, r *http.Request) (id.UserID, bool) {
	userID := requestcontext.UserID(r.Context())
	if userID.IsZero() {
		h.logger.ErrorContext(r.Context(), "directory route reached without authenticated user",
			"path", r.URL.Path,
			"request_id", requestcontext.RequestID(r.Context()),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return 0, false
	}
	return userID, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	ctx := r.Context()
	if dErrors.HasCode(err, dErrors.CodeUnavailable) || dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, op+" failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	httputil.WriteError(w, err)
}

func (h *Handler) HandleSearchByName(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := h.requester(w, r)
	if !ok {
		return
	}
	matches, err := h.service.SearchByName(r.Context(), requesterID, r.URL.Query().Get("name"))
	if err != nil {
		h.fail(w, r, "search by name", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, SearchResultsResponse[NameMatchResponse]{Results: toNameMatches(matches)})
}

func (h *Handler) HandleSearchByPhone(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := h.requester(w, r)
	if !ok {
		return
	}
	lookup, err := h.service.SearchByPhone(r.Context(), requesterID, r.URL.Query().Get("phone"))
	if err != nil {
		h.fail(w, r, "search by phone", err)
		return
	}
	if lookup.IsRegistered() {
		u := lookup.Registered
		httputil.WriteJSON(w, http.StatusOK, RegisteredUserResponse{
			Name:           u.Name,
			Phone:          u.Phone,
			Email:          u.Email,
			SpamLikelihood: u.SpamLikelihood,
		})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, SearchResultsResponse[ContactMatchResponse]{Results: toContactMatches(lookup.Contacts)})
}

func (h *Handler) HandleFetchByID(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := h.requester(w, r)
	if !ok {
		return
	}
	targetID, err := id.ParseUserID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	profile, err := h.service.FetchByID(r.Context(), requesterID, targetID)
	if err != nil {
		h.fail(w, r, "fetch user", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, UserEnvelope{User: toUserDetails(profile)})
}

func (h *Handler) HandleReportSpam(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := h.requester(w, r)
	if !ok {
		return
	}
	var req ReportSpamRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	report, err := h.service.ReportSpam(r.Context(), requesterID, req.Phone)
	if err != nil {
		h.fail(w, r, "report spam", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, ReportSpamResponse{
		Message: "Spam reported",
		SpamReport: SpamReportResponse{
			ID:         int64(report.ID),
			ReporterID: int64(report.ReporterID),
			Phone:      report.Phone,
			CreatedAt:  report.CreatedAt,
		},
	})
}

func (h *Handler) HandleAddContact(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := h.requester(w, r)
	if !ok {
		return
	}
	var req AddContactRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	contact, err := h.service.AddContact(r.Context(), requesterID, req.Name, req.Phone)
	if err != nil {
		h.fail(w, r, "add contact", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, AddContactResponse{Message: "Contact added", Contact: toContact(contact)})
}

func (h *Handler) HandleListContacts(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := h.requester(w, r)
	if !ok {
		return
	}
	contacts, err := h.service.ListContacts(r.Context(), requesterID)
	if err != nil {
		h.fail(w, r, "list contacts", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ContactsResponse{Contacts: toContacts(contacts)})
}
