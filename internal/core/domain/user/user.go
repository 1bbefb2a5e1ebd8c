package user

import (
	"time"
	c "userapi/internal/core/domain/common"
	e "userapi/internal/core/domain/errors"
)

// DefaultRoleName is reported for accounts without an explicit role.
const DefaultRoleName = "User"

type ID int64

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type ResetToken string

func (t ResetToken) String() string {
	return "***"
}

type Role struct {
	ID   int64
	Name string
}

type User struct {
	ID                  ID
	FirstName           string
	LastName            string
	Email               string
	PasswordHash        PasswordHash
	Gender              c.Optional[string]
	Dob                 c.Optional[c.Date]
	Country             c.Optional[string]
	State               c.Optional[string]
	City                c.Optional[string]
	Address             c.Optional[string]
	ProfileImagePath    c.Optional[string]
	IsTermsAccepted     bool
	CreatedAt           time.Time
	ResetToken          c.Optional[ResetToken]
	ResetTokenExpiresAt c.Optional[time.Time]
	Role                c.Optional[Role]
}

func (u *User) Validate() error {
	if u.ResetToken.IsPresent != u.ResetTokenExpiresAt.IsPresent {
		return e.NewInvalidStateError("reset token and its expiry must be set together for user %d", u.ID)
	}
	return nil
}

func (u *User) HasPendingReset() bool {
	return u.ResetToken.IsPresent
}

// IsResetTokenExpired reports whether the pending reset token is no longer usable at the given moment.
// The expiry is an exclusive upper bound.
func (u *User) IsResetTokenExpired(at time.Time) bool {
	if !u.ResetTokenExpiresAt.IsPresent {
		return true
	}
	return !at.Before(u.ResetTokenExpiresAt.Value)
}

func (u *User) RoleName() string {
	if u.Role.IsPresent && u.Role.Value.Name != "" {
		return u.Role.Value.Name
	}
	return DefaultRoleName
}
