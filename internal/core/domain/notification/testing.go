package notification

import (
	"context"
	"errors"
	"sync"
)

type FakeEmailSender struct {
	Sent        []Email
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeEmailSender() *FakeEmailSender {
	return &FakeEmailSender{}
}

func (s *FakeEmailSender) SendEmail(ctx context.Context, email Email) error {
	if s.ReturnError {
		return errors.New("could not send email")
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, email)
	return nil
}
