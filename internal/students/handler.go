package students

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/markhoor-institute/markhoor-api/internal/platform/httpx"
	"github.com/markhoor-institute/markhoor-api/internal/shared"
	"github.com/markhoor-institute/markhoor-api/internal/uploads"
)

// Handler wires HTTP endpoints for the students module.
type Handler struct {
	logger       *slog.Logger
	service      *Service
	storage      *uploads.Storage
	validator    *validator.Validate
	requireAdmin func(http.Handler) http.Handler
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, storage *uploads.Storage, requireAdmin func(http.Handler) http.Handler) *Handler {
	return &Handler{
		logger:       logger,
		service:      service,
		storage:      storage,
		validator:    validator.New(),
		requireAdmin: requireAdmin,
	}
}

// MountRoutes registers student routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Get("/verify/{srNo}", h.verify)
	r.Group(func(r chi.Router) {
		r.Use(h.requireAdmin)
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

type registerRequest struct {
	Name           string `json:"name" validate:"required"`
	FatherName     string `json:"fatherName" validate:"required"`
	SerialNo       string `json:"srNo" validate:"required"`
	RegistrationNo string `json:"regNo"`
	Duration       string `json:"duration"`
	Course         string `json:"course" validate:"required"`
	Phone          string `json:"phone" validate:"required"`
	Email          string `json:"email" validate:"omitempty,email"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	student, err := h.service.Register(r.Context(), StudentInput{
		Name:           req.Name,
		FatherName:     req.FatherName,
		SerialNo:       req.SerialNo,
		RegistrationNo: req.RegistrationNo,
		Duration:       req.Duration,
		Course:         req.Course,
		Phone:          req.Phone,
		Email:          req.Email,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, student)
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	student, err := h.service.VerifyCertificate(r.Context(), chi.URLParam(r, "srNo"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, student)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	students, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list students", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, students)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	student, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, student)
}

func (h *Handler) parseInput(r *http.Request) (StudentInput, error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return StudentInput{}, shared.ErrValidation
	}
	input := StudentInput{
		Name:           r.FormValue("name"),
		FatherName:     r.FormValue("fatherName"),
		SerialNo:       r.FormValue("srNo"),
		RegistrationNo: r.FormValue("regNo"),
		Duration:       r.FormValue("duration"),
		IssueDate:      r.FormValue("issueDate"),
		Course:         r.FormValue("course"),
		Phone:          r.FormValue("phone"),
		Email:          r.FormValue("email"),
	}
	if raw := r.FormValue("status"); raw != "" {
		status := Status(raw)
		if !status.Valid() {
			return StudentInput{}, shared.ErrValidation
		}
		input.Status = status
	}

	certificate, err := h.storage.SaveFromRequest(r, "certificate", uploads.KindPDF, "certificates")
	if err != nil {
		return StudentInput{}, shared.ErrValidation
	}
	input.CertificateURL = certificate
	return input, nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	input, err := h.parseInput(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if input.Name == "" || input.SerialNo == "" || input.Course == "" {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	student, err := h.service.Create(r.Context(), input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, student)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	input, err := h.parseInput(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	student, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, student)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Student deleted successfully"})
}
