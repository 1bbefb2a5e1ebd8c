package user

import "context"

type ResetTokenGenerator interface {
	GenerateResetToken() ResetToken
}

// PasswordResetter drives an account through NoPendingReset -> ResetPending -> NoPendingReset.
type PasswordResetter interface {
	// Issue stores a fresh token for the user, replacing any pending one.
	Issue(ctx context.Context, u User) (ResetToken, error)
	// Consume sets the new password hash and clears the token.
	// Fails with ErrResetTokenNotFound or ErrResetTokenExpired.
	Consume(ctx context.Context, token ResetToken, newPasswordHash PasswordHash) (User, error)
}

type ResetLinkSender interface {
	SendResetLink(ctx context.Context, u User, token ResetToken) error
}
