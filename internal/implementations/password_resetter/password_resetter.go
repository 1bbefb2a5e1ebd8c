package passwordresetter

import (
	"context"
	"errors"
	"time"
	c "userapi/internal/core/domain/common"
	e "userapi/internal/core/domain/errors"
	"userapi/internal/core/domain/logging"
	uow "userapi/internal/core/domain/unit_of_work"
	"userapi/internal/core/domain/user"
)

// Stored keeps a single pending token per user in the users table.
type Stored struct {
	log            logging.Logger
	unitOfWork     uow.UnitOfWork
	userRepository user.UserRepository
	generator      user.ResetTokenGenerator
	validDuration  time.Duration
	now            func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	userRepository user.UserRepository,
	generator user.ResetTokenGenerator,
	validDuration time.Duration,
	now func() time.Time,
) *Stored {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if generator == nil {
		panic(e.NewNilArgumentError("generator"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Stored{
		log:            log,
		unitOfWork:     unitOfWork,
		userRepository: userRepository,
		generator:      generator,
		validDuration:  validDuration,
		now:            now,
	}
}

func (s *Stored) Issue(ctx context.Context, u user.User) (token user.ResetToken, err error) {
	token = s.generator.GenerateResetToken()
	expiresAt := s.now().UTC().Add(s.validDuration)
	_, err = s.userRepository.Update(ctx, user.UpdateUserInput{
		ID:                  u.ID,
		DoResetTokenUpdate:  true,
		ResetToken:          c.NewOptional(token, true),
		ResetTokenExpiresAt: c.NewOptional(expiresAt, true),
	})
	if err != nil {
		return token, err
	}

	s.log.Info(ctx, "Password reset token issued.", logging.Entry("userID", u.ID), logging.Entry("expiresAt", expiresAt))
	return token, nil
}

func (s *Stored) Consume(
	ctx context.Context,
	token user.ResetToken,
	newPasswordHash user.PasswordHash,
) (u user.User, err error) {
	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		return u, err
	}
	defer uow.Rollback(ctx)

	u, err = uow.Users().GetByResetToken(ctx, token)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return u, user.ErrResetTokenNotFound
	}
	if err != nil {
		return u, err
	}
	if u.IsResetTokenExpired(s.now()) {
		return u, user.ErrResetTokenExpired
	}

	u, err = uow.Users().Update(ctx, user.UpdateUserInput{
		ID:                 u.ID,
		PasswordHash:       c.NewOptional(newPasswordHash, true),
		DoResetTokenUpdate: true,
	})
	if err != nil {
		return u, err
	}
	if err := uow.Commit(ctx); err != nil {
		return u, err
	}
	return u, nil
}
