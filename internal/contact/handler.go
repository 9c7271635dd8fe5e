package contact

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/markhoor-institute/markhoor-api/internal/platform/httpx"
	"github.com/markhoor-institute/markhoor-api/internal/shared"
	"github.com/markhoor-institute/markhoor-api/internal/uploads"
)

// Handler wires HTTP endpoints for the contact module.
type Handler struct {
	logger       *slog.Logger
	service      *Service
	storage      *uploads.Storage
	requireAdmin func(http.Handler) http.Handler
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, storage *uploads.Storage, requireAdmin func(http.Handler) http.Handler) *Handler {
	return &Handler{
		logger:       logger,
		service:      service,
		storage:      storage,
		requireAdmin: requireAdmin,
	}
}

// MountRoutes registers contact routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.submit)
	r.Group(func(r chi.Router) {
		r.Use(h.requireAdmin)
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.Put("/{id}/status", h.updateStatus)
		r.Delete("/{id}", h.delete)
	})
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	// Honeypot field, bots fill it in. Pretend success.
	if r.FormValue("website") != "" {
		httpx.JSON(w, http.StatusCreated, map[string]string{"message": "Inquiry submitted successfully"})
		return
	}
	input := SubmitInput{
		Name:                  r.FormValue("name"),
		Email:                 r.FormValue("email"),
		Phone:                 r.FormValue("phone"),
		Subject:               r.FormValue("subject"),
		Message:               r.FormValue("message"),
		CallbackRequest:       r.FormValue("callbackRequest") == "true",
		PreferredCallbackTime: r.FormValue("preferredCallbackTime"),
		IPAddress:             r.RemoteAddr,
		UserAgent:             r.UserAgent(),
	}
	if input.Name == "" || input.Email == "" || input.Subject == "" || input.Message == "" {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}

	attachment, err := h.storage.SaveFromRequest(r, "attachment", uploads.KindAttachment, "contact")
	if err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	input.Attachment = attachment

	inquiry, err := h.service.Submit(r.Context(), input)
	if err != nil {
		h.logger.Error("submit inquiry", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, inquiry)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Page:    atoiDefault(r.URL.Query().Get("page"), 1),
		PerPage: atoiDefault(r.URL.Query().Get("per_page"), 20),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := Status(raw)
		if !status.Valid() {
			httpx.RespondError(w, shared.ErrValidation)
			return
		}
		filter.Status = status
	}
	inquiries, pagination, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("list inquiries", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"data":       inquiries,
		"pagination": pagination,
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	inquiry, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inquiry)
}

type updateStatusRequest struct {
	Status Status `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	inquiry, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inquiry)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Inquiry deleted successfully"})
}

func atoiDefault(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
