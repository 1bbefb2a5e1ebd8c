package emailreadyforsending

import (
	"context"
	"errors"
	"testing"
	"time"
	"userapi/internal/core/domain/logging"
	"userapi/internal/core/services"
	sendemail "userapi/internal/core/services/send_email"
	"userapi/internal/rabbitmq/schema"

	"github.com/stretchr/testify/require"
)

func newConsumer(service services.Service[sendemail.Input, sendemail.Result]) (*Consumer, *logging.FakeLogger) {
	log := logging.NewFakeLogger()
	return &Consumer{log: log, queue: "reset_link", service: service}, log
}

func TestHandleSendsEmail(t *testing.T) {
	queuedAt := time.Date(2024, 2, 3, 10, 20, 30, 0, time.UTC)
	var got []sendemail.Input
	consumer, _ := newConsumer(services.ServiceFunc[sendemail.Input, sendemail.Result](
		func(ctx context.Context, input sendemail.Input) (sendemail.Result, error) {
			got = append(got, input)
			return sendemail.Result{}, nil
		},
	))
	message := schema.Email{To: "jane@test.test", Subject: "Password Reset Request", Body: "Hello", QueuedAt: queuedAt}
	body, err := message.Marshal()
	require.Nil(t, err)

	requeue := consumer.handle(context.Background(), body)

	require.False(t, requeue)
	require.Len(t, got, 1)
	require.Equal(t, "jane@test.test", got[0].Email.To)
	require.Equal(t, "Password Reset Request", got[0].Email.Subject)
	require.Equal(t, "Hello", got[0].Email.Body)
	require.Equal(t, queuedAt, got[0].QueuedAt)
}

func TestHandleDropsMalformedMessage(t *testing.T) {
	called := false
	consumer, log := newConsumer(services.ServiceFunc[sendemail.Input, sendemail.Result](
		func(ctx context.Context, input sendemail.Input) (sendemail.Result, error) {
			called = true
			return sendemail.Result{}, nil
		},
	))

	requeue := consumer.handle(context.Background(), []byte("not json"))

	require.False(t, requeue)
	require.False(t, called)
	require.Equal(t, 1, log.CountByLevel(logging.ERROR))
}

func TestHandleRequeuesFailedSend(t *testing.T) {
	consumer, _ := newConsumer(services.ServiceFunc[sendemail.Input, sendemail.Result](
		func(ctx context.Context, input sendemail.Input) (sendemail.Result, error) {
			return sendemail.Result{}, errors.New("ses is down")
		},
	))
	body, err := (&schema.Email{To: "jane@test.test"}).Marshal()
	require.Nil(t, err)

	require.True(t, consumer.handle(context.Background(), body))
}
