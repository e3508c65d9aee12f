package controllers

import (
	"context"
	"encoding/json"
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

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	createErr        error
	lastCreated      *domain.Event
	listEvents       []*domain.Event
	listErr          error
	lastOnlyApproved bool
	approveErr       error
	getByIDEvent     *domain.Event
	getByIDErr       error
}

func (f *fakeEventService) Create(ctx context.Context, event *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	event.ID = "ev-1"
	f.lastCreated = event
	return nil
}

func (f *fakeEventService) List(ctx context.Context, onlyApproved bool) ([]*domain.Event, error) {
	f.lastOnlyApproved = onlyApproved
	return f.listEvents, f.listErr
}

func (f *fakeEventService) Approve(ctx context.Context, id string) error {
	return f.approveErr
}

func (f *fakeEventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if f.getByIDErr != nil {
		return nil, f.getByIDErr
	}
	return f.getByIDEvent, nil
}

func TestEventController_CreateEvent(t *testing.T) {
	validBody := `{"name":"Go Workshop","description":"intro","date":"2026-10-01T10:00:00Z","location":"Hall A","totalSlots":30,"organizerId":"org-1"}`

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
			name:         "organizer not verified",
			body:         validBody,
			fakeErr:      domain.ErrOrganizerNotVerified,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "zero slots",
			body:         `{"name":"Go Workshop","date":"2026-10-01T10:00:00Z","totalSlots":0,"organizerId":"org-1"}`,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "paid event without price",
			body:         `{"name":"Go Workshop","date":"2026-10-01T10:00:00Z","totalSlots":30,"organizerId":"org-1","isPaid":true}`,
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
			fake := &fakeEventService{createErr: tt.fakeErr}
			ctrl := NewEventController(testLogger(), fake)

			req := httptest.NewRequest(http.MethodPost, "http://test/events", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			ctrl.CreateEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			envelope := decodeEnvelope(t, rr)
			if tt.wantStatus == http.StatusCreated {
				require.Nil(t, envelope.Error)
				require.NotNil(t, fake.lastCreated)
				assert.Equal(t, domain.EventPending, fake.lastCreated.Status)
				assert.Equal(t, 30, fake.lastCreated.AvailableSlots)
			} else {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			}
		})
	}
}

func TestEventController_ListEvents(t *testing.T) {
	now := time.Now()
	events := []*domain.Event{
		{ID: "ev-1", Name: "First", Date: now, Status: domain.EventApproved},
		{ID: "ev-2", Name: "Second", Date: now.Add(time.Hour), Status: domain.EventApproved},
	}

	t.Run("defaults to approved only", func(t *testing.T) {
		fake := &fakeEventService{listEvents: events}
		ctrl := NewEventController(testLogger(), fake)

		req := httptest.NewRequest(http.MethodGet, "http://test/events", nil)
		rr := httptest.NewRecorder()

		ctrl.ListEvents(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, fake.lastOnlyApproved)
		var body struct {
			Data []*domain.Event `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		require.Len(t, body.Data, 2)
	})

	t.Run("only_approved=false includes everything", func(t *testing.T) {
		fake := &fakeEventService{listEvents: events}
		ctrl := NewEventController(testLogger(), fake)

		req := httptest.NewRequest(http.MethodGet, "http://test/events?only_approved=false", nil)
		rr := httptest.NewRecorder()

		ctrl.ListEvents(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.False(t, fake.lastOnlyApproved)
	})
}

func TestEventController_GetEvent(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fake := &fakeEventService{getByIDEvent: &domain.Event{ID: "ev-1", Name: "Go Workshop"}}
		ctrl := NewEventController(testLogger(), fake)

		req := httptest.NewRequest(http.MethodGet, "http://test/events/ev-1", nil)
		req.SetPathValue("eventID", "ev-1")
		rr := httptest.NewRecorder()

		ctrl.GetEvent(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("not found", func(t *testing.T) {
		fake := &fakeEventService{getByIDErr: domain.ErrNotFound}
		ctrl := NewEventController(testLogger(), fake)

		req := httptest.NewRequest(http.MethodGet, "http://test/events/nope", nil)
		req.SetPathValue("eventID", "nope")
		rr := httptest.NewRecorder()

		ctrl.GetEvent(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
		envelope := decodeEnvelope(t, rr)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, helpers.ErrCodeNotFound, envelope.Error.Code)
	})
}

func TestEventController_ApproveEvent(t *testing.T) {
	tests := []struct {
		name         string
		fakeErr      error
		wantStatus   int
		wantBodyCode string
	}{
		{
			name:       "success",
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
			fake := &fakeEventService{approveErr: tt.fakeErr}
			ctrl := NewEventController(testLogger(), fake)

			req := httptest.NewRequest(http.MethodPatch, "http://test/events/ev-1/approve", nil)
			req.SetPathValue("eventID", "ev-1")
			rr := httptest.NewRecorder()

			ctrl.ApproveEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			envelope := decodeEnvelope(t, rr)
			if tt.wantBodyCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			}
		})
	}
}
