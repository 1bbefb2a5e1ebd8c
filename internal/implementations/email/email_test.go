package email

import (
	"context"
	"testing"
	"userapi/internal/core/domain/logging"
	"userapi/internal/core/domain/notification"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/require"
)

func TestBuildSendEmailInput(t *testing.T) {
	input := buildSendEmailInput("noreply@test.test", notification.Email{
		To:      "jane@test.test",
		Subject: "Password Reset Request",
		Body:    "Hello Jane",
	})

	require.Equal(t, "noreply@test.test", aws.ToString(input.Source))
	require.Equal(t, []string{"jane@test.test"}, input.Destination.ToAddresses)
	require.Equal(t, "Password Reset Request", aws.ToString(input.Message.Subject.Data))
	require.Equal(t, "Hello Jane", aws.ToString(input.Message.Body.Text.Data))
	require.Nil(t, input.Message.Body.Html)
}

func TestSESSenderRequiresSenderAddress(t *testing.T) {
	require.Panics(t, func() { NewSESSender(aws.Config{}, "") })
}

func TestLogSender(t *testing.T) {
	log := logging.NewFakeLogger()

	err := NewLogSender(log).SendEmail(context.Background(), notification.Email{To: "jane@test.test"})

	require.Nil(t, err)
	require.Equal(t, 1, log.CountByLevel(logging.INFO))
}
