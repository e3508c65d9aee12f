package services

import (
	"context"
	"fmt"
	"sync"

	"eventhub/internal/domain"
)

// mockEventRepository is an in-memory EventRepository. The mutex mirrors the
// store's single-document atomicity: ReserveSlot checks and decrements under
// one lock, so concurrent callers can never oversubscribe.
type mockEventRepository struct {
	mu           sync.Mutex
	events       map[string]*domain.Event
	releaseCalls int
	err          error
}

func newMockEventRepository(events ...*domain.Event) *mockEventRepository {
	m := &mockEventRepository{events: make(map[string]*domain.Event)}
	for _, e := range events {
		m.events[e.ID] = e
	}
	return m
}

func (m *mockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	event.ID = fmt.Sprintf("ev-%d", len(m.events)+1)
	m.events[event.ID] = event
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (m *mockEventRepository) List(ctx context.Context, onlyApproved bool) ([]*domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	events := make([]*domain.Event, 0, len(m.events))
	for _, e := range m.events {
		if onlyApproved && e.Status != domain.EventApproved {
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

func (m *mockEventRepository) Approve(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ev, ok := m.events[id]
	if !ok {
		return domain.ErrNotFound
	}
	ev.Status = domain.EventApproved
	return nil
}

func (m *mockEventRepository) ReserveSlot(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ev, ok := m.events[id]
	if !ok || ev.Status != domain.EventApproved || ev.AvailableSlots <= 0 {
		return domain.ErrEventFull
	}
	ev.AvailableSlots--
	return nil
}

func (m *mockEventRepository) ReleaseSlot(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releaseCalls++
	ev, ok := m.events[id]
	if !ok {
		return domain.ErrNotFound
	}
	ev.AvailableSlots++
	return nil
}

// mockRegistrationRepository is an in-memory RegistrationRepository.
type mockRegistrationRepository struct {
	mu        sync.Mutex
	regs      map[string]*domain.Registration
	nextID    int
	createErr error
}

func newMockRegistrationRepository() *mockRegistrationRepository {
	return &mockRegistrationRepository{regs: make(map[string]*domain.Registration)}
}

func (m *mockRegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	reg.ID = fmt.Sprintf("reg-%d", m.nextID)
	m.regs[reg.ID] = reg
	return nil
}

func (m *mockRegistrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reg, ok := m.regs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return reg, nil
}

func (m *mockRegistrationRepository) GetActiveByStudentAndEvent(ctx context.Context, studentID, eventID string) (*domain.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, reg := range m.regs {
		if reg.StudentID == studentID && reg.EventID == eventID && reg.Status == domain.RegistrationRegistered {
			return reg, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockRegistrationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	regs := make([]*domain.Registration, 0)
	for _, reg := range m.regs {
		if reg.EventID == eventID {
			regs = append(regs, reg)
		}
	}
	return regs, nil
}

func (m *mockRegistrationRepository) UpdateStatus(ctx context.Context, id string, status domain.RegistrationStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	reg, ok := m.regs[id]
	if !ok {
		return domain.ErrNotFound
	}
	reg.Status = status
	return nil
}

// mockUserRepository is an in-memory UserRepository.
type mockUserRepository struct {
	users map[string]*domain.User
	err   error
}

func newMockUserRepository(users ...*domain.User) *mockUserRepository {
	m := &mockUserRepository{users: make(map[string]*domain.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.err != nil {
		return m.err
	}
	user.ID = fmt.Sprintf("user-%d", len(m.users)+1)
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	users := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	return users, nil
}

// mockMessageRepository is an in-memory MessageRepository.
type mockMessageRepository struct {
	mu       sync.Mutex
	messages []*domain.Message
	err      error
}

func (m *mockMessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	msg.ID = fmt.Sprintf("msg-%d", len(m.messages)+1)
	m.messages = append(m.messages, msg)
	return nil
}

func (m *mockMessageRepository) CountStudentMessages(ctx context.Context, eventID, senderID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	count := 0
	for _, msg := range m.messages {
		if msg.EventID == eventID && msg.SenderID == senderID && msg.MessageType == domain.MessageStudent {
			count++
		}
	}
	return count, nil
}

func (m *mockMessageRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	msgs := make([]*domain.Message, 0)
	for _, msg := range m.messages {
		if msg.EventID == eventID {
			msgs = append(msgs, msg)
		}
	}
	return msgs, nil
}

// mockHasher is a PasswordHasher with recognizable output.
type mockHasher struct {
	err error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "hashed:" + password, nil
}

func (m *mockHasher) Compare(hash, password string) error {
	if hash == "hashed:"+password {
		return nil
	}
	return fmt.Errorf("password mismatch")
}

// mockMailer records sent emails.
type mockMailer struct {
	sent []string
	err  error
}

func (m *mockMailer) Send(to, subject, html, text string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}
