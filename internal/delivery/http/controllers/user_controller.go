// Package controllers maps HTTP requests onto the domain services.
package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/domain"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// CreateUserRequest is the request body for POST /users.
type CreateUserRequest struct {
	Name             string                   `json:"name"`
	Email            string                   `json:"email"`
	Password         string                   `json:"password"`
	Role             string                   `json:"role"`
	Verified         bool                     `json:"verified"`
	StudentProfile   *domain.StudentProfile   `json:"studentProfile"`
	OrganizerProfile *domain.OrganizerProfile `json:"orgProfile"`
}

// Validate implements Validator.
func (c CreateUserRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	email := strings.TrimSpace(strings.ToLower(c.Email))
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegex.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	if c.Password == "" {
		errs = append(errs, "password is required")
	} else if len(c.Password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}
	switch domain.Role(strings.TrimSpace(strings.ToLower(c.Role))) {
	case domain.RoleStudent, domain.RoleOrganizer, domain.RoleAdmin:
	default:
		errs = append(errs, `role must be "student", "organizer" or "admin"`)
	}
	return errs
}

// CreateUserSuccessResponse is the success response envelope for POST /users (201).
type CreateUserSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListUsersSuccessResponse is the success response envelope for GET /users (200).
type ListUsersSuccessResponse struct {
	Data  []*domain.User    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UserController handles user account endpoints.
type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

// NewUserController creates a UserController with the given logger and service.
func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateUser godoc
// @Summary Create a new user
// @Description Create a user with name, email, password, and role ("student", "organizer" or "admin"). The password is stored hashed and never returned.
// @Tags users
// @Accept json
// @Produce json
// @Param body body CreateUserRequest true "User data"
// @Success 201 {object} controllers.CreateUserSuccessResponse "data contains the created user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users [post]
func (c *UserController) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	now := time.Now()
	user := domain.NewUser(
		strings.TrimSpace(req.Name),
		strings.TrimSpace(strings.ToLower(req.Email)),
		domain.Role(strings.TrimSpace(strings.ToLower(req.Role))),
		req.Verified,
		now, now,
	)
	user.StudentProfile = req.StudentProfile
	user.OrganizerProfile = req.OrganizerProfile
	if err := c.Service.Create(r.Context(), user, req.Password); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "email already registered")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, user)
}

// ListUsers godoc
// @Summary List all users
// @Tags users
// @Produce json
// @Success 200 {object} controllers.ListUsersSuccessResponse "data contains the users"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users [get]
func (c *UserController) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := c.Service.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, users)
}

// GetUser godoc
// @Summary Get a user by ID
// @Tags users
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} controllers.CreateUserSuccessResponse "data contains the user"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/{userID} [get]
func (c *UserController) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	user, err := c.Service.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "user not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}
