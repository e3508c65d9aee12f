package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeUserService implements domain.UserService for handler tests.
type fakeUserService struct {
	createErr   error
	lastCreated *domain.User
	listUsers   []*domain.User
	listErr     error
	getByIDUser *domain.User
	getByIDErr  error
}

func (f *fakeUserService) Create(ctx context.Context, user *domain.User, password string) error {
	if f.createErr != nil {
		return f.createErr
	}
	user.ID = "user-1"
	f.lastCreated = user
	return nil
}

func (f *fakeUserService) List(ctx context.Context) ([]*domain.User, error) {
	return f.listUsers, f.listErr
}

func (f *fakeUserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.getByIDErr != nil {
		return nil, f.getByIDErr
	}
	return f.getByIDUser, nil
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	return envelope
}

func TestUserController_CreateUser(t *testing.T) {
	validBody := `{"name":"Alice","email":"alice@example.com","password":"supersecret","role":"student"}`

	tests := []struct {
		name         string
		body         string
		fakeErr      error
		wantStatus   int
		wantBodyCode string
	}{
		{
			name:       "success",
			body:       validBody,
			wantStatus: http.StatusCreated,
		},
		{
			name:         "duplicate email",
			body:         validBody,
			fakeErr:      domain.ErrDuplicateEmail,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "missing email",
			body:         `{"name":"Alice","password":"supersecret","role":"student"}`,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "short password",
			body:         `{"name":"Alice","email":"alice@example.com","password":"short","role":"student"}`,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "unknown role",
			body:         `{"name":"Alice","email":"alice@example.com","password":"supersecret","role":"wizard"}`,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "service error",
			body:         validBody,
			fakeErr:      assert.AnError,
			wantStatus:   http.StatusInternalServerError,
			wantBodyCode: helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeUserService{createErr: tt.fakeErr}
			ctrl := NewUserController(testLogger(), fake)

			req := httptest.NewRequest(http.MethodPost, "http://test/users", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			ctrl.CreateUser(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			envelope := decodeEnvelope(t, rr)
			if tt.wantStatus == http.StatusCreated {
				require.Nil(t, envelope.Error)
				require.NotNil(t, fake.lastCreated)
				assert.Equal(t, "alice@example.com", fake.lastCreated.Email)
				assert.Equal(t, domain.RoleStudent, fake.lastCreated.Role)
			} else {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			}
		})
	}
}

func TestUserController_CreateUser_NormalizesEmail(t *testing.T) {
	fake := &fakeUserService{}
	ctrl := NewUserController(testLogger(), fake)

	body := `{"name":"Alice","email":"Alice@Example.COM","password":"supersecret","role":"organizer"}`
	req := httptest.NewRequest(http.MethodPost, "http://test/users", strings.NewReader(body))
	rr := httptest.NewRecorder()

	ctrl.CreateUser(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	require.NotNil(t, fake.lastCreated)
	assert.Equal(t, "alice@example.com", fake.lastCreated.Email)
}

func TestUserController_ListUsers(t *testing.T) {
	now := time.Now()
	fake := &fakeUserService{listUsers: []*domain.User{
		{ID: "user-1", Name: "Alice", Email: "alice@example.com", Role: domain.RoleStudent, CreatedAt: now, UpdatedAt: now},
		{ID: "user-2", Name: "Bob", Email: "bob@example.com", Role: domain.RoleOrganizer, CreatedAt: now, UpdatedAt: now},
	}}
	ctrl := NewUserController(testLogger(), fake)

	req := httptest.NewRequest(http.MethodGet, "http://test/users", nil)
	rr := httptest.NewRecorder()

	ctrl.ListUsers(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	envelope := decodeEnvelope(t, rr)
	require.Nil(t, envelope.Error)
	users, ok := envelope.Data.([]any)
	require.True(t, ok)
	require.Len(t, users, 2)
}

func TestUserController_GetUser(t *testing.T) {
	tests := []struct {
		name         string
		fakeUser     *domain.User
		fakeErr      error
		wantStatus   int
		wantBodyCode string
	}{
		{
			name:       "success",
			fakeUser:   &domain.User{ID: "user-1", Name: "Alice", Email: "alice@example.com", Role: domain.RoleStudent},
			wantStatus: http.StatusOK,
		},
		{
			name:         "not found",
			fakeErr:      domain.ErrNotFound,
			wantStatus:   http.StatusNotFound,
			wantBodyCode: helpers.ErrCodeNotFound,
		},
		{
			name:         "service error",
			fakeErr:      assert.AnError,
			wantStatus:   http.StatusInternalServerError,
			wantBodyCode: helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeUserService{getByIDUser: tt.fakeUser, getByIDErr: tt.fakeErr}
			ctrl := NewUserController(testLogger(), fake)

			req := httptest.NewRequest(http.MethodGet, "http://test/users/user-1", nil)
			req.SetPathValue("userID", "user-1")
			rr := httptest.NewRecorder()

			ctrl.GetUser(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			envelope := decodeEnvelope(t, rr)
			if tt.wantBodyCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			}
		})
	}
}
