package user

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	c "userapi/internal/core/domain/common"
)

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) PasswordHash {
	return PasswordHash(fmt.Sprintf("%x", md5.Sum([]byte(password))))
}

type FakeResetTokenGenerator struct {
	Tokens []ResetToken
	next   int
	lock   sync.Mutex
}

// NewFakeResetTokenGenerator returns the given tokens one by one, repeating the last one.
func NewFakeResetTokenGenerator(tokens ...string) *FakeResetTokenGenerator {
	g := &FakeResetTokenGenerator{}
	for _, token := range tokens {
		g.Tokens = append(g.Tokens, ResetToken(token))
	}
	return g
}

func (g *FakeResetTokenGenerator) GenerateResetToken() ResetToken {
	g.lock.Lock()
	defer g.lock.Unlock()
	if len(g.Tokens) == 0 {
		panic("no tokens configured")
	}
	ix := g.next
	if ix >= len(g.Tokens) {
		ix = len(g.Tokens) - 1
	}
	g.next++
	return g.Tokens[ix]
}

type FakeResetLinkSender struct {
	Sent        []ResetToken
	SentTo      []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeResetLinkSender() *FakeResetLinkSender {
	return &FakeResetLinkSender{}
}

func (s *FakeResetLinkSender) SendResetLink(ctx context.Context, u User, token ResetToken) error {
	if s.ReturnError {
		return fmt.Errorf("could not send reset link to user %d", u.ID)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, token)
	s.SentTo = append(s.SentTo, u)
	return nil
}

func (s *FakeResetLinkSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

// FakePasswordResetter keeps reset tokens in a FakeUserRepository.
type FakePasswordResetter struct {
	Repository    *FakeUserRepository
	Generator     *FakeResetTokenGenerator
	ValidDuration time.Duration
	Now           func() time.Time
	ReturnError   bool
}

func NewFakePasswordResetter(
	repository *FakeUserRepository,
	generator *FakeResetTokenGenerator,
	validDuration time.Duration,
	now func() time.Time,
) *FakePasswordResetter {
	return &FakePasswordResetter{
		Repository:    repository,
		Generator:     generator,
		ValidDuration: validDuration,
		Now:           now,
	}
}

func (r *FakePasswordResetter) Issue(ctx context.Context, u User) (token ResetToken, err error) {
	if r.ReturnError {
		return token, fmt.Errorf("could not issue reset token for user %d", u.ID)
	}
	token = r.Generator.GenerateResetToken()
	_, err = r.Repository.Update(ctx, UpdateUserInput{
		ID:                  u.ID,
		DoResetTokenUpdate:  true,
		ResetToken:          c.NewOptional(token, true),
		ResetTokenExpiresAt: c.NewOptional(r.Now().Add(r.ValidDuration), true),
	})
	return token, err
}

func (r *FakePasswordResetter) Consume(
	ctx context.Context,
	token ResetToken,
	newPasswordHash PasswordHash,
) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not consume reset token")
	}
	u, err = r.Repository.GetByResetToken(ctx, token)
	if errors.Is(err, ErrUserDoesNotExist) {
		return u, ErrResetTokenNotFound
	}
	if err != nil {
		return u, err
	}
	if u.IsResetTokenExpired(r.Now()) {
		return u, ErrResetTokenExpired
	}
	return r.Repository.Update(ctx, UpdateUserInput{
		ID:                 u.ID,
		PasswordHash:       c.NewOptional(newPasswordHash, true),
		DoResetTokenUpdate: true,
	})
}

// FakeUserRepository is an in-memory record store.
type FakeUserRepository struct {
	Users       []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %v", input.Email)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, u := range r.Users {
		if u.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
		if u.ID > maxID {
			maxID = u.ID
		}
	}
	u = User{
		ID:               maxID + 1,
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		Email:            input.Email,
		PasswordHash:     input.PasswordHash,
		Gender:           input.Gender,
		Dob:              input.Dob,
		Country:          input.Country,
		State:            input.State,
		City:             input.City,
		Address:          input.Address,
		ProfileImagePath: input.ProfileImagePath,
		IsTermsAccepted:  input.IsTermsAccepted,
		CreatedAt:        input.CreatedAt,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (User, error) {
	return r.find(func(u User) bool { return u.ID == id })
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	return r.find(func(u User) bool { return u.Email == email })
}

func (r *FakeUserRepository) GetByEmailAndPasswordHash(
	ctx context.Context,
	email string,
	hash PasswordHash,
) (User, error) {
	return r.find(func(u User) bool { return u.Email == email && u.PasswordHash == hash })
}

func (r *FakeUserRepository) GetByResetToken(ctx context.Context, token ResetToken) (User, error) {
	return r.find(func(u User) bool { return u.ResetToken.IsPresent && u.ResetToken.Value == token })
}

func (r *FakeUserRepository) ExistsWithEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if errors.Is(err, ErrUserDoesNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *FakeUserRepository) List(ctx context.Context, order Order) ([]User, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not list users")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	users := make([]User, len(r.Users))
	copy(users, r.Users)
	sort.SliceStable(users, func(i, j int) bool {
		cmp := compareUsers(users[i], users[j], order.Field)
		if order.Desc {
			return cmp > 0
		}
		return cmp < 0
	})
	return users, nil
}

func (r *FakeUserRepository) Update(ctx context.Context, input UpdateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not update user %d", input.ID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix := range r.Users {
		if r.Users[ix].ID != input.ID {
			continue
		}
		if input.Email.IsPresent {
			for _, other := range r.Users {
				if other.ID != input.ID && other.Email == input.Email.Value {
					return u, ErrEmailAlreadyExists
				}
			}
		}
		stored := &r.Users[ix]
		stored.FirstName = input.FirstName.ValueOr(stored.FirstName)
		stored.LastName = input.LastName.ValueOr(stored.LastName)
		stored.Email = input.Email.ValueOr(stored.Email)
		stored.PasswordHash = input.PasswordHash.ValueOr(stored.PasswordHash)
		mergeOptional(&stored.Gender, input.Gender)
		mergeOptional(&stored.Dob, input.Dob)
		mergeOptional(&stored.Country, input.Country)
		mergeOptional(&stored.State, input.State)
		mergeOptional(&stored.City, input.City)
		mergeOptional(&stored.Address, input.Address)
		mergeOptional(&stored.ProfileImagePath, input.ProfileImagePath)
		if input.DoResetTokenUpdate {
			stored.ResetToken = input.ResetToken
			stored.ResetTokenExpiresAt = input.ResetTokenExpiresAt
		}
		return *stored, nil
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) Delete(ctx context.Context, id ID) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users = append(r.Users[:ix], r.Users[ix+1:]...)
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) ListCountries(ctx context.Context) ([]string, error) {
	return r.distinct(func(u User) c.Optional[string] { return u.Country })
}

func (r *FakeUserRepository) ListStates(ctx context.Context, country string) ([]string, error) {
	return r.distinct(func(u User) c.Optional[string] {
		if u.Country.IsPresent && u.Country.Value == country {
			return u.State
		}
		return c.Optional[string]{}
	})
}

func (r *FakeUserRepository) ListCities(ctx context.Context, state string) ([]string, error) {
	return r.distinct(func(u User) c.Optional[string] {
		if u.State.IsPresent && u.State.Value == state {
			return u.City
		}
		return c.Optional[string]{}
	})
}

func (r *FakeUserRepository) find(match func(u User) bool) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not read users")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if match(u) {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) distinct(pick func(u User) c.Optional[string]) ([]string, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not read locations")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	seen := make(map[string]bool)
	values := make([]string, 0)
	for _, u := range r.Users {
		value := pick(u)
		if !value.IsPresent || c.IsBlank(value.Value) || seen[value.Value] {
			continue
		}
		seen[value.Value] = true
		values = append(values, value.Value)
	}
	sort.Strings(values)
	return values, nil
}

func mergeOptional[T any](stored *c.Optional[T], update c.Optional[T]) {
	if update.IsPresent {
		*stored = update
	}
}

func compareUsers(a User, b User, field OrderField) int {
	switch field {
	case OrderByFullName:
		if cmp := strings.Compare(a.FirstName, b.FirstName); cmp != 0 {
			return cmp
		}
		return strings.Compare(a.LastName, b.LastName)
	case OrderByFirstName:
		return strings.Compare(a.FirstName, b.FirstName)
	case OrderByLastName:
		return strings.Compare(a.LastName, b.LastName)
	case OrderByEmail:
		return strings.Compare(a.Email, b.Email)
	case OrderByGender:
		return strings.Compare(a.Gender.ValueOr(""), b.Gender.ValueOr(""))
	case OrderByCountry:
		return strings.Compare(a.Country.ValueOr(""), b.Country.ValueOr(""))
	case OrderByDob:
		switch {
		case a.Dob.IsPresent && b.Dob.IsPresent:
			if a.Dob.Value.Before(b.Dob.Value) {
				return -1
			}
			if b.Dob.Value.Before(a.Dob.Value) {
				return 1
			}
			return 0
		case a.Dob.IsPresent:
			return 1
		case b.Dob.IsPresent:
			return -1
		}
		return 0
	}
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	}
	return 0
}
