package sendpasswordresettoken

import (
	"context"
	"errors"
	"fmt"
	"strings"
	c "userapi/internal/core/domain/common"
	e "userapi/internal/core/domain/errors"
	"userapi/internal/core/domain/logging"
	"userapi/internal/core/domain/user"
	"userapi/internal/core/services"
)

type Input struct {
	Email string
}

// Result carries the issued token for test-mode responses only.
// It is absent when no account has the requested email.
type Result struct {
	Token c.Optional[user.ResetToken]
}

type service struct {
	log              logging.Logger
	userRepository   user.UserRepository
	passwordResetter user.PasswordResetter
	resetLinkSender  user.ResetLinkSender
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordResetter user.PasswordResetter,
	resetLinkSender user.ResetLinkSender,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if passwordResetter == nil {
		panic(e.NewNilArgumentError("passwordResetter"))
	}
	if resetLinkSender == nil {
		panic(e.NewNilArgumentError("resetLinkSender"))
	}
	return &service{
		log:              log,
		userRepository:   userRepository,
		passwordResetter: passwordResetter,
		resetLinkSender:  resetLinkSender,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return result, user.ErrMissingEmail
	}

	u, err := s.userRepository.GetByEmail(ctx, email)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "Password reset requested for unknown email.", logging.Entry("email", email))
		return result, nil
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("email", email))
		return result, err
	}

	token, err := s.passwordResetter.Issue(ctx, u)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		return result, err
	}

	if err := s.resetLinkSender.SendResetLink(ctx, u, token); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		return result, fmt.Errorf("%w: %v", user.ErrResetLinkNotSent, err)
	}

	s.log.Info(ctx, "Password reset link has been sent.", logging.Entry("userID", u.ID))
	return Result{Token: c.NewOptional(token, true)}, nil
}
