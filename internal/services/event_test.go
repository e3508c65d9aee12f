package services

import (
	"context"
	"testing"
	"time"

	"eventhub/internal/domain"

	"github.com/stretchr/testify/require"
)

func zeroTime() time.Time { return time.Time{} }

func newTestEvent(organizerID string) *domain.Event {
	return domain.NewEvent("Tech Fest", "Annual fest", time.Now().AddDate(0, 1, 0),
		"Main Hall", 50, false, nil, organizerID, zeroTime(), zeroTime())
}

func TestEventService_Create(t *testing.T) {
	ctx := context.Background()
	verifiedOrganizer := &domain.User{ID: "org-1", Role: domain.RoleOrganizer, Verified: true}

	t.Run("verified organizer creates a pending event", func(t *testing.T) {
		eventRepo := newMockEventRepository()
		svc := NewEventService(eventRepo, newMockUserRepository(verifiedOrganizer))

		event := newTestEvent("org-1")
		event.Status = domain.EventApproved // callers cannot pre-approve
		event.AvailableSlots = 0
		require.NoError(t, svc.Create(ctx, event))
		require.Equal(t, domain.EventPending, event.Status)
		require.Equal(t, 50, event.AvailableSlots)
		require.NotEmpty(t, event.ID)
	})

	t.Run("unverified organizer is rejected", func(t *testing.T) {
		unverified := &domain.User{ID: "org-2", Role: domain.RoleOrganizer, Verified: false}
		svc := NewEventService(newMockEventRepository(), newMockUserRepository(unverified))
		require.ErrorIs(t, svc.Create(ctx, newTestEvent("org-2")), domain.ErrOrganizerNotVerified)
	})

	t.Run("student cannot create events", func(t *testing.T) {
		student := &domain.User{ID: "stu-1", Role: domain.RoleStudent, Verified: true}
		svc := NewEventService(newMockEventRepository(), newMockUserRepository(student))
		require.ErrorIs(t, svc.Create(ctx, newTestEvent("stu-1")), domain.ErrOrganizerNotVerified)
	})

	t.Run("unknown organizer is rejected", func(t *testing.T) {
		svc := NewEventService(newMockEventRepository(), newMockUserRepository())
		require.ErrorIs(t, svc.Create(ctx, newTestEvent("org-missing")), domain.ErrOrganizerNotVerified)
	})

	t.Run("missing organizer id is invalid", func(t *testing.T) {
		svc := NewEventService(newMockEventRepository(), newMockUserRepository())
		require.ErrorIs(t, svc.Create(ctx, newTestEvent("")), domain.ErrInvalidInput)
	})
}

func TestEventService_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("approves an existing event", func(t *testing.T) {
		ev := newTestEvent("org-1")
		ev.ID = "ev-1"
		eventRepo := newMockEventRepository(ev)
		svc := NewEventService(eventRepo, newMockUserRepository())

		require.NoError(t, svc.Approve(ctx, "ev-1"))
		require.Equal(t, domain.EventApproved, ev.Status)
	})

	t.Run("missing event reports not found", func(t *testing.T) {
		svc := NewEventService(newMockEventRepository(), newMockUserRepository())
		require.ErrorIs(t, svc.Approve(ctx, "ev-missing"), domain.ErrNotFound)
	})
}

func TestEventService_List(t *testing.T) {
	ctx := context.Background()
	approved := newTestEvent("org-1")
	approved.ID = "ev-1"
	approved.Status = domain.EventApproved
	pending := newTestEvent("org-1")
	pending.ID = "ev-2"

	eventRepo := newMockEventRepository(approved, pending)
	svc := NewEventService(eventRepo, newMockUserRepository())

	onlyApproved, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, onlyApproved, 1)

	all, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
}
