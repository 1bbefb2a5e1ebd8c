package user

// PasswordHasher computes deterministic password digests, so a digest can be used
// as a lookup key together with the email.
type PasswordHasher interface {
	HashPassword(password RawPassword) PasswordHash
}
