package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sadhanaAPI/internal/types/user"
)

type UserService struct {
	db *pgxpool.Pool
}

func NewUserService(db *pgxpool.Pool) *UserService {
	return &UserService{db: db}
}

type UpsertUserRequest struct {
	ClerkID       string
	Email         string
	FirstName     string
	LastName      string
	ImageURL      string
	EmailVerified bool
}

// UpsertUser creates or refreshes the local row for a Clerk identity.
// Called from the user-sync webhook for both user.created and
// user.updated.
func (s *UserService) UpsertUser(ctx context.Context, req *UpsertUserRequest) (*user.User, error) {
	query := `
		INSERT INTO users (clerk_id, email, first_name, last_name, image_url, email_verified)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (clerk_id)
		DO UPDATE SET
			email = $2,
			first_name = $3,
			last_name = $4,
			image_url = $5,
			email_verified = $6,
			updated_at = NOW()
		RETURNING id, clerk_id, email, first_name, last_name, image_url,
			email_verified, created_at, updated_at
	`

	u := &user.User{}
	err := s.db.QueryRow(
		ctx, query,
		req.ClerkID, req.Email, req.FirstName, req.LastName, req.ImageURL, req.EmailVerified,
	).Scan(
		&u.ID, &u.ClerkID, &u.Email, &u.FirstName, &u.LastName,
		&u.ImageURL, &u.EmailVerified, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	return u, nil
}

func (s *UserService) GetUserByClerkID(ctx context.Context, clerkID string) (*user.User, error) {
	query := `
		SELECT id, clerk_id, email, first_name, last_name, image_url,
			email_verified, created_at, updated_at
		FROM users
		WHERE clerk_id = $1
	`

	u := &user.User{}
	err := s.db.QueryRow(ctx, query, clerkID).Scan(
		&u.ID, &u.ClerkID, &u.Email, &u.FirstName, &u.LastName,
		&u.ImageURL, &u.EmailVerified, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", clerkID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return u, nil
}

// DeleteUserByClerkID removes the user row; sessions and stats cascade.
func (s *UserService) DeleteUserByClerkID(ctx context.Context, clerkID string) error {
	result, err := s.db.Exec(ctx, `DELETE FROM users WHERE clerk_id = $1`, clerkID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", clerkID, ErrNotFound)
	}
	return nil
}
