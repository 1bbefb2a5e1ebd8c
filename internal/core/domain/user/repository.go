package user

import (
	"context"
	"time"
	c "userapi/internal/core/domain/common"
)

type CreateUserInput struct {
	FirstName        string
	LastName         string
	Email            string
	PasswordHash     PasswordHash
	Gender           c.Optional[string]
	Dob              c.Optional[c.Date]
	Country          c.Optional[string]
	State            c.Optional[string]
	City             c.Optional[string]
	Address          c.Optional[string]
	ProfileImagePath c.Optional[string]
	IsTermsAccepted  bool
	CreatedAt        time.Time
}

// UpdateUserInput describes a field-level update.
// Absent optionals leave the stored values untouched.
type UpdateUserInput struct {
	ID               ID
	FirstName        c.Optional[string]
	LastName         c.Optional[string]
	Email            c.Optional[string]
	PasswordHash     c.Optional[PasswordHash]
	Gender           c.Optional[string]
	Dob              c.Optional[c.Date]
	Country          c.Optional[string]
	State            c.Optional[string]
	City             c.Optional[string]
	Address          c.Optional[string]
	ProfileImagePath c.Optional[string]

	// DoResetTokenUpdate overwrites both reset token fields with the values below,
	// absent values clear them.
	DoResetTokenUpdate  bool
	ResetToken          c.Optional[ResetToken]
	ResetTokenExpiresAt c.Optional[time.Time]
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByEmailAndPasswordHash(ctx context.Context, email string, hash PasswordHash) (User, error)
	GetByResetToken(ctx context.Context, token ResetToken) (User, error)
	ExistsWithEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, order Order) ([]User, error)
	Update(ctx context.Context, input UpdateUserInput) (User, error)
	Delete(ctx context.Context, id ID) error
}

// LocationRepository is a read-only projection of the address fields of all users.
// Every method returns distinct non-blank values in ascending order.
type LocationRepository interface {
	ListCountries(ctx context.Context) ([]string, error)
	ListStates(ctx context.Context, country string) ([]string, error)
	ListCities(ctx context.Context, state string) ([]string, error)
}
