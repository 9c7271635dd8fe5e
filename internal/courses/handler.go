package courses

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/markhoor-institute/markhoor-api/internal/platform/httpx"
	"github.com/markhoor-institute/markhoor-api/internal/shared"
	"github.com/markhoor-institute/markhoor-api/internal/uploads"
)

// Handler wires HTTP endpoints for the courses module.
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

// MountRoutes registers course routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listActive)
	r.Get("/{id}", h.get)
	r.Group(func(r chi.Router) {
		r.Use(h.requireAdmin)
		r.Get("/all", h.listAll)
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func (h *Handler) listActive(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.ListActive(r.Context())
	if err != nil {
		h.logger.Error("list active courses", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, courses)
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.ListAll(r.Context())
	if err != nil {
		h.logger.Error("list courses", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, courses)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	course, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, course)
}

func (h *Handler) parseInput(r *http.Request) (CourseInput, error) {
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		return CourseInput{}, shared.ErrValidation
	}
	input := CourseInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Duration:    r.FormValue("duration"),
	}
	if raw := r.FormValue("fee"); raw != "" {
		fee, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return CourseInput{}, shared.ErrValidation
		}
		input.Fee = fee
		input.FeeSet = true
	}
	if raw := r.FormValue("isActive"); raw != "" {
		active := raw == "true"
		input.IsActive = &active
	}
	image, err := h.storage.SaveFromRequest(r, "image", uploads.KindImage, "courses")
	if err != nil {
		return CourseInput{}, shared.ErrValidation
	}
	input.Image = image
	return input, nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	input, err := h.parseInput(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if input.Name == "" || input.Description == "" {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	course, err := h.service.Create(r.Context(), input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, course)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	input, err := h.parseInput(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	course, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, course)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Course deleted successfully"})
}
