package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"eventhub/internal/domain"
)

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{
		DB: db,
	}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (name, email, password, role, verified, student_profile, org_profile, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	studentProfile, err := marshalProfile(u.StudentProfile)
	if err != nil {
		return fmt.Errorf("marshal student profile: %w", err)
	}
	orgProfile, err := marshalProfile(u.OrganizerProfile)
	if err != nil {
		return fmt.Errorf("marshal organizer profile: %w", err)
	}
	err = r.DB.QueryRowContext(ctx, query,
		u.Name, u.Email, u.Password, string(u.Role), u.Verified,
		studentProfile, orgProfile, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, name, email, password, role, verified, student_profile, org_profile, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return r.getOne(ctx, query, email)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, name, email, password, role, verified, student_profile, org_profile, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.getOne(ctx, query, id)
}

func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	query := `
		SELECT id, name, email, password, role, verified, student_profile, org_profile, created_at, updated_at
		FROM users
		ORDER BY created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	var role string
	var studentProfile, orgProfile []byte
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Password, &role, &u.Verified,
		&studentProfile, &orgProfile, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	if len(studentProfile) > 0 {
		u.StudentProfile = &domain.StudentProfile{}
		if err := json.Unmarshal(studentProfile, u.StudentProfile); err != nil {
			return nil, fmt.Errorf("unmarshal student profile: %w", err)
		}
	}
	if len(orgProfile) > 0 {
		u.OrganizerProfile = &domain.OrganizerProfile{}
		if err := json.Unmarshal(orgProfile, u.OrganizerProfile); err != nil {
			return nil, fmt.Errorf("unmarshal organizer profile: %w", err)
		}
	}
	return u, nil
}

// marshalProfile encodes a profile pointer as jsonb, mapping nil to SQL NULL.
func marshalProfile(v any) (any, error) {
	switch p := v.(type) {
	case *domain.StudentProfile:
		if p == nil {
			return nil, nil
		}
	case *domain.OrganizerProfile:
		if p == nil {
			return nil, nil
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return b, nil
}
