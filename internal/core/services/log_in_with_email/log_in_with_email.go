package loginwithemail

import (
	"context"
	"errors"
	"strings"
	c "userapi/internal/core/domain/common"
	e "userapi/internal/core/domain/errors"
	"userapi/internal/core/domain/logging"
	"userapi/internal/core/domain/user"
	"userapi/internal/core/services"
)

type Input struct {
	Email    string
	Password user.RawPassword
}

type Result struct {
	User     user.User
	RoleName string
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	passwordHasher user.PasswordHasher
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordHasher user.PasswordHasher,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		passwordHasher: passwordHasher,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || c.IsBlank(string(input.Password)) {
		return result, user.ErrMissingCredentials
	}

	u, err := s.userRepository.GetByEmailAndPasswordHash(ctx, email, s.passwordHasher.HashPassword(input.Password))
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "Invalid credentials provided.", logging.Entry("email", email))
		return result, user.ErrInvalidCredentials
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("email", email))
		return result, err
	}

	s.log.Info(ctx, "User successfully authenticated.", logging.Entry("userID", u.ID))
	return Result{User: u, RoleName: u.RoleName()}, nil
}
