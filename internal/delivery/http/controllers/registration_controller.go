package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/domain"
)

// RegisterSuccessResponse is the success response envelope for POST /registrations (201).
type RegisterSuccessResponse struct {
	Data  *domain.Registration `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// ListRegistrationsSuccessResponse is the success response envelope for GET /registrations/by-event/{eventID} (200).
type ListRegistrationsSuccessResponse struct {
	Data  []*domain.Registration `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// RegistrationController handles seat registration endpoints.
type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

// NewRegistrationController creates a RegistrationController with the given logger and service.
func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register a student for an event
// @Description Reserve a seat on an approved event. Fails when the student already holds an active registration or the event has no seats left.
// @Tags registrations
// @Produce json
// @Param studentId query string true "Student ID"
// @Param eventId query string true "Event ID"
// @Success 201 {object} controllers.RegisterSuccessResponse "data contains the registration"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request, conflict or capacity"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	studentID := r.URL.Query().Get("studentId")
	eventID := r.URL.Query().Get("eventId")
	if studentID == "" || eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "studentId and eventId are required")
		return
	}
	reg, err := c.Service.Register(r.Context(), studentID, eventID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyRegistered):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeConflict, err.Error())
		case errors.Is(err, domain.ErrEventFull):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeCapacity, err.Error())
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, reg)
}

// ListByEvent godoc
// @Summary List registrations for an event
// @Description Returns the raw registration records for the event, including removed ones.
// @Tags registrations
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.ListRegistrationsSuccessResponse "data contains the registrations"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations/by-event/{eventID} [get]
func (c *RegistrationController) ListByEvent(w http.ResponseWriter, r *http.Request) {
	regs, err := c.Service.ListByEvent(r.Context(), r.PathValue("eventID"))
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, regs)
}

// Unregister godoc
// @Summary Cancel a registration
// @Description Marks the registration removed and returns its seat to the event.
// @Tags registrations
// @Produce json
// @Param registrationID path string true "Registration ID"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations/{registrationID} [delete]
func (c *RegistrationController) Unregister(w http.ResponseWriter, r *http.Request) {
	registrationID := r.PathValue("registrationID")
	if err := c.Service.Unregister(r.Context(), registrationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "registration not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "registration removed", "registrationId": registrationID})
}
