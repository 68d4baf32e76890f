package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/dhia-elwidad/spmb-api/internal/dto"
	"github.com/dhia-elwidad/spmb-api/internal/service"
	"github.com/dhia-elwidad/spmb-api/internal/utils"
)

const defaultPageSize = 20

// AdminStudentHandler serves the panel's applicant table.
type AdminStudentHandler struct {
	students  service.StudentService
	documents service.DocumentService
	importer  service.ImportService
	logger    zerolog.Logger
}

// NewAdminStudentHandler constructs the applicant handler.
func NewAdminStudentHandler(students service.StudentService, documents service.DocumentService, importer service.ImportService, logger zerolog.Logger) *AdminStudentHandler {
	return &AdminStudentHandler{
		students:  students,
		documents: documents,
		importer:  importer,
		logger:    logger.With().Str("component", "admin_student_handler").Logger(),
	}
}

// Create records a manual applicant entry.
func (h *AdminStudentHandler) Create(c *fiber.Ctx) error {
	var payload dto.StudentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.students.Create(c.UserContext(), actorFromContext(c), payload)
	if err != nil {
		if isValidationError(err) || errors.Is(err, service.ErrInvalidLevel) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to create student")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create student")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "student created", response)
}

// List returns the paginated applicant table, confined to the caller's level
// scope.
func (h *AdminStudentHandler) List(c *fiber.Ctx) error {
	opts := service.StudentListOptions{
		Status:   c.Query("status"),
		Search:   c.Query("search"),
		Page:     parseQueryInt(c, "page", 1),
		PageSize: parseQueryInt(c, "page_size", defaultPageSize),
	}

	response, err := h.students.List(c.UserContext(), actorFromContext(c), opts)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to list students")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list students")
	}

	return utils.SendSuccess(c, "students retrieved", response)
}

// Get returns one applicant by id.
func (h *AdminStudentHandler) Get(c *fiber.Ctx) error {
	response, err := h.students.Get(c.UserContext(), actorFromContext(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, service.ErrStudentNotFound.Error())
		}
		h.logger.Error().Err(err).Msg("failed to get student")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to get student")
	}

	return utils.SendSuccess(c, "student retrieved", response)
}

// SetStatus replaces the applicant's registration status.
func (h *AdminStudentHandler) SetStatus(c *fiber.Ctx) error {
	var payload dto.StatusUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.students.SetStatus(c.UserContext(), actorFromContext(c), c.Params("id"), payload.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, service.ErrStudentNotFound.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to update student status")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update student status")
		}
	}

	return utils.SendSuccess(c, "status updated", response)
}

// AttachDocument stores an uploaded berkas and appends it to the applicant's
// document list.
func (h *AdminStudentHandler) AttachDocument(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}

	response, err := h.documents.Attach(c.UserContext(), actorFromContext(c), c.Params("id"), file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, service.ErrStudentNotFound.Error())
		case errors.Is(err, service.ErrBerkasTooLarge):
			return utils.SendError(c, fiber.StatusRequestEntityTooLarge, service.ErrBerkasTooLarge.Error())
		case errors.Is(err, service.ErrBerkasTypeNotAllowed):
			return utils.SendError(c, fiber.StatusUnsupportedMediaType, service.ErrBerkasTypeNotAllowed.Error())
		case errors.Is(err, service.ErrStorageUnavailable):
			return utils.SendError(c, fiber.StatusServiceUnavailable, service.ErrStorageUnavailable.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to attach document")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to attach document")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "document attached", response)
}

// Import bulk-creates applicants from a JSON array.
func (h *AdminStudentHandler) Import(c *fiber.Ctx) error {
	response, err := h.importer.Import(c.UserContext(), actorFromContext(c), c.Body())
	if err != nil {
		if errors.Is(err, service.ErrImportInvalid) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("bulk import failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "bulk import failed")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "import completed", response)
}
