package books

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/markhoor-institute/markhoor-api/internal/auth"
	"github.com/markhoor-institute/markhoor-api/internal/platform/httpx"
	"github.com/markhoor-institute/markhoor-api/internal/shared"
	"github.com/markhoor-institute/markhoor-api/internal/uploads"
)

// Handler wires HTTP endpoints for the books module.
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

// MountRoutes registers book routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listPublic)
	r.Get("/{id}", h.get)
	r.Group(func(r chi.Router) {
		r.Use(h.requireAdmin)
		r.Get("/all", h.listAll)
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func (h *Handler) listPublic(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.ListPublic(r.Context())
	if err != nil {
		h.logger.Error("list public books", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, books)
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.ListAll(r.Context())
	if err != nil {
		h.logger.Error("list books", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, books)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	book, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, book)
}

func (h *Handler) parseInput(r *http.Request) (BookInput, error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return BookInput{}, shared.ErrValidation
	}
	input := BookInput{
		Title:       r.FormValue("title"),
		Author:      r.FormValue("author"),
		Description: r.FormValue("description"),
		Course:      r.FormValue("course"),
	}
	if raw := r.FormValue("isPublic"); raw != "" {
		public := raw == "true"
		input.IsPublic = &public
	}
	if raw := r.FormValue("chapters"); raw != "" {
		var chapters []string
		if err := json.Unmarshal([]byte(raw), &chapters); err != nil {
			return BookInput{}, shared.ErrValidation
		}
		input.Chapters = chapters
	}

	cover, err := h.storage.SaveFromRequest(r, "coverImage", uploads.KindImage, "covers")
	if err != nil {
		return BookInput{}, shared.ErrValidation
	}
	input.CoverImage = cover

	pdf, err := h.storage.SaveFromRequest(r, "pdf", uploads.KindPDF, "books")
	if err != nil {
		return BookInput{}, shared.ErrValidation
	}
	input.PDFURL = pdf
	return input, nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	if principal == nil {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}
	input, err := h.parseInput(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if input.Title == "" || input.Author == "" || input.Description == "" || input.Course == "" {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	book, err := h.service.Create(r.Context(), principal.ID, input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, book)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	input, err := h.parseInput(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	book, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, book)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Book deleted successfully"})
}
