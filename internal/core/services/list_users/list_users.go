package listusers

import (
	"context"
	c "userapi/internal/core/domain/common"
	e "userapi/internal/core/domain/errors"
	"userapi/internal/core/domain/logging"
	"userapi/internal/core/domain/user"
	"userapi/internal/core/services"
)

type Input struct {
	SortBy  string
	SortDir c.Optional[string]
}

type Result struct {
	Users []user.User
	Order user.Order
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
	order := user.ParseOrder(input.SortBy, input.SortDir)
	users, err := s.userRepository.List(ctx, order)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("sortBy", order.Field.String()), logging.Entry("desc", order.Desc))
		return result, err
	}

	s.log.Debug(
		ctx,
		"Users listed.",
		logging.Entry("sortBy", order.Field.String()),
		logging.Entry("desc", order.Desc),
		logging.Entry("count", len(users)),
	)
	return Result{Users: users, Order: order}, nil
}
