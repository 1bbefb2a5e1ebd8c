package signupwithemail

import (
	"context"
	"errors"
	"strings"
	"time"
	c "userapi/internal/core/domain/common"
	e "userapi/internal/core/domain/errors"
	"userapi/internal/core/domain/logging"
	uow "userapi/internal/core/domain/unit_of_work"
	"userapi/internal/core/domain/user"
	"userapi/internal/core/services"
)

type Input struct {
	FirstName        string
	LastName         string
	Email            string
	Password         user.RawPassword
	Gender           string
	Dob              string
	Country          string
	State            string
	City             string
	Address          string
	ProfileImagePath string
	IsTermsAccepted  bool
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	unitOfWork     uow.UnitOfWork
	passwordHasher user.PasswordHasher
	now            func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	passwordHasher user.PasswordHasher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		unitOfWork:     unitOfWork,
		passwordHasher: passwordHasher,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return result, user.ErrMissingEmail
	}
	if c.IsBlank(string(input.Password)) {
		return result, user.ErrMissingPassword
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("email", email))
		return result, err
	}
	defer uow.Rollback(ctx)

	exists, err := uow.Users().ExistsWithEmail(ctx, email)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("email", email))
		return result, err
	}
	if exists {
		s.log.Info(ctx, "User with the email already exists.", logging.Entry("email", email))
		return result, user.ErrEmailAlreadyExists
	}

	dob, err := c.ParseDate(input.Dob)
	if err != nil {
		return result, err
	}

	createdUser, err := uow.Users().Create(ctx, user.CreateUserInput{
		FirstName:        strings.TrimSpace(input.FirstName),
		LastName:         strings.TrimSpace(input.LastName),
		Email:            email,
		PasswordHash:     s.passwordHasher.HashPassword(input.Password),
		Gender:           c.NonBlank(input.Gender),
		Dob:              dob,
		Country:          c.NonBlank(input.Country),
		State:            c.NonBlank(input.State),
		City:             c.NonBlank(input.City),
		Address:          c.NonBlank(input.Address),
		ProfileImagePath: c.NonBlank(input.ProfileImagePath),
		IsTermsAccepted:  input.IsTermsAccepted,
		CreatedAt:        s.now().UTC(),
	})
	if errors.Is(err, user.ErrEmailAlreadyExists) {
		s.log.Info(ctx, "User with the email has been created concurrently.", logging.Entry("email", email))
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("email", email))
		return result, err
	}

	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("email", email))
		return result, err
	}

	s.log.Info(ctx, "New user has been registered.", logging.Entry("userID", createdUser.ID))
	return Result{User: createdUser}, nil
}
