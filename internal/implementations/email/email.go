package email

import (
	"context"
	"errors"
	e "userapi/internal/core/domain/errors"
	"userapi/internal/core/domain/logging"
	"userapi/internal/core/domain/notification"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const charset = "UTF-8"

type SESSender struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	sender string
}

func NewSESSender(awsConfig aws.Config, sender string) *SESSender {
	if sender == "" {
		panic("email sender address must be configured")
	}
	return &SESSender{ses: ses.NewFromConfig(awsConfig), sender: sender}
}

func (s *SESSender) SendEmail(ctx context.Context, email notification.Email) error {
	if email.To == "" {
		return errors.New("email recipient is not defined")
	}
	_, err := s.ses.SendEmail(ctx, buildSendEmailInput(s.sender, email))
	return err
}

func buildSendEmailInput(sender string, email notification.Email) *ses.SendEmailInput {
	return &ses.SendEmailInput{
		Source: aws.String(sender),
		Destination: &types.Destination{
			CcAddresses: []string{},
			ToAddresses: []string{email.To},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(email.Subject), Charset: aws.String(charset)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(email.Body), Charset: aws.String(charset)},
			},
		},
	}
}

// LogSender only logs outgoing emails. Used for local runs without a mail transport.
type LogSender struct {
	log logging.Logger
}

func NewLogSender(log logging.Logger) *LogSender {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &LogSender{log: log}
}

func (s *LogSender) SendEmail(ctx context.Context, email notification.Email) error {
	s.log.Info(
		ctx,
		"Email has not been sent, logging transport is in use.",
		logging.Entry("to", email.To),
		logging.Entry("subject", email.Subject),
	)
	return nil
}
