package deleteuser

import (
	"context"
	"errors"
	e "userapi/internal/core/domain/errors"
	"userapi/internal/core/domain/logging"
	"userapi/internal/core/domain/user"
	"userapi/internal/core/services"
)

type Input struct {
	UserID user.ID
}

type Result struct{}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if _, err := s.userRepository.GetByID(ctx, input.UserID); err != nil {
		if !errors.Is(err, user.ErrUserDoesNotExist) {
			logging.Error(ctx, s.log, err, logging.Entry("userID", input.UserID))
		}
		return result, err
	}

	err = s.userRepository.Delete(ctx, input.UserID)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "User has been deleted concurrently.", logging.Entry("userID", input.UserID))
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.UserID))
		return result, err
	}

	s.log.Info(ctx, "User has been deleted.", logging.Entry("userID", input.UserID))
	return result, nil
}
