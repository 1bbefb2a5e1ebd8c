package sendemail

import (
	"context"
	"time"
	e "userapi/internal/core/domain/errors"
	"userapi/internal/core/domain/logging"
	"userapi/internal/core/domain/notification"
	"userapi/internal/core/services"
)

type Input struct {
	Email    notification.Email
	QueuedAt time.Time
}

type Result struct{}

type service struct {
	log         logging.Logger
	emailSender notification.EmailSender
	now         func() time.Time
}

func New(
	log logging.Logger,
	emailSender notification.EmailSender,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if emailSender == nil {
		panic(e.NewNilArgumentError("emailSender"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{log: log, emailSender: emailSender, now: now}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if err := s.emailSender.SendEmail(ctx, input.Email); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("subject", input.Email.Subject))
		return result, err
	}

	entries := []logging.LogEntry{logging.Entry("subject", input.Email.Subject)}
	if !input.QueuedAt.IsZero() {
		entries = append(entries, logging.Entry("queuedFor", s.now().Sub(input.QueuedAt).String()))
	}
	s.log.Info(ctx, "Email has been sent.", entries...)
	return result, nil
}
