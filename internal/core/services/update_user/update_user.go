package updateuser

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

// Input holds a partial profile. Blank text fields keep the stored values.
type Input struct {
	UserID           user.ID
	FirstName        string
	LastName         string
	Email            string
	Gender           string
	DobText          string
	Dob              c.Optional[c.Date]
	Country          string
	State            string
	City             string
	Address          string
	ProfileImagePath string
}

type Result struct {
	User user.User
}

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

	dob := input.Dob
	if !c.IsBlank(input.DobText) {
		dob, err = c.ParseDate(input.DobText)
		if err != nil {
			return result, err
		}
	}

	updatedUser, err := s.userRepository.Update(ctx, user.UpdateUserInput{
		ID:               input.UserID,
		FirstName:        c.NonBlank(strings.TrimSpace(input.FirstName)),
		LastName:         c.NonBlank(strings.TrimSpace(input.LastName)),
		Email:            c.NonBlank(strings.TrimSpace(input.Email)),
		Gender:           c.NonBlank(input.Gender),
		Dob:              dob,
		Country:          c.NonBlank(input.Country),
		State:            c.NonBlank(input.State),
		City:             c.NonBlank(input.City),
		Address:          c.NonBlank(input.Address),
		ProfileImagePath: c.NonBlank(input.ProfileImagePath),
	})
	if errors.Is(err, user.ErrEmailAlreadyExists) || errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "Could not update user.", logging.Entry("userID", input.UserID), logging.Entry("err", err))
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.UserID))
		return result, err
	}

	s.log.Info(ctx, "User has been updated.", logging.Entry("userID", input.UserID))
	return Result{User: updatedUser}, nil
}
