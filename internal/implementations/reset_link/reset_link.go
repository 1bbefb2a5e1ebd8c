package resetlink

import (
	"context"
	"fmt"
	"net/url"
	e "userapi/internal/core/domain/errors"
	"userapi/internal/core/domain/notification"
	"userapi/internal/core/domain/user"
)

const subject = "Password Reset Request"

const bodyTemplate = `Hello %s,

Please click the link below to reset your password:

%s

If you did not request this, please ignore this email.`

// Sender emails reset links pointing to the front-end reset page.
type Sender struct {
	emailSender notification.EmailSender
	pageURL     url.URL
}

func New(emailSender notification.EmailSender, frontendBaseURL url.URL, resetPasswordPath string) *Sender {
	if emailSender == nil {
		panic(e.NewNilArgumentError("emailSender"))
	}
	return &Sender{
		emailSender: emailSender,
		pageURL:     *frontendBaseURL.JoinPath(resetPasswordPath),
	}
}

func (s *Sender) Link(token user.ResetToken) string {
	link := s.pageURL
	link.RawQuery = url.Values{"token": []string{string(token)}}.Encode()
	return link.String()
}

func (s *Sender) Compose(u user.User, token user.ResetToken) notification.Email {
	return notification.Email{
		To:      u.Email,
		Subject: subject,
		Body:    fmt.Sprintf(bodyTemplate, u.FirstName, s.Link(token)),
	}
}

func (s *Sender) SendResetLink(ctx context.Context, u user.User, token user.ResetToken) error {
	return s.emailSender.SendEmail(ctx, s.Compose(u, token))
}
