package sendpasswordresettoken

import (
	"context"
	"testing"
	"time"
	"userapi/internal/core/domain/logging"
	"userapi/internal/core/domain/user"
	"userapi/internal/core/services"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL       = "test@test.test"
	RESET_TOKEN = "0123456789abcdef0123456789abcdef"
)

var NOW time.Time = time.Date(2024, 2, 3, 10, 20, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Logger           *logging.FakeLogger
	UserRepository   *user.FakeUserRepository
	PasswordResetter *user.FakePasswordResetter
	ResetLinkSender  *user.FakeResetLinkSender
	Service          services.Service[Input, Result]
	User             user.User
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.PasswordResetter = user.NewFakePasswordResetter(
		suite.UserRepository,
		user.NewFakeResetTokenGenerator(RESET_TOKEN),
		2*time.Hour,
		func() time.Time { return NOW },
	)
	suite.ResetLinkSender = user.NewFakeResetLinkSender()
	suite.Service = New(suite.Logger, suite.UserRepository, suite.PasswordResetter, suite.ResetLinkSender)

	u, err := suite.UserRepository.Create(context.Background(), user.CreateUserInput{
		FirstName:    "Jane",
		Email:        EMAIL,
		PasswordHash: "hash",
		CreatedAt:    NOW,
	})
	suite.Require().Nil(err)
	suite.User = u
}

func TestSendPasswordResetTokenService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccess() {
	ctx := context.Background()
	result, err := suite.Service.Run(ctx, Input{Email: EMAIL})

	assert := suite.Require()
	assert.Nil(err)
	assert.True(result.Token.IsPresent)
	assert.Equal(user.ResetToken(RESET_TOKEN), result.Token.Value)
	assert.Equal(1, suite.ResetLinkSender.SentCount())
	assert.Equal(user.ResetToken(RESET_TOKEN), suite.ResetLinkSender.Sent[0])
	assert.Equal(suite.User.ID, suite.ResetLinkSender.SentTo[0].ID)

	stored, err := suite.UserRepository.GetByID(ctx, suite.User.ID)
	assert.Nil(err)
	assert.Equal(user.ResetToken(RESET_TOKEN), stored.ResetToken.Value)
	assert.Equal(NOW.Add(2*time.Hour), stored.ResetTokenExpiresAt.Value)
}

func (suite *testSuite) TestUnknownEmailLooksLikeSuccess() {
	result, err := suite.Service.Run(context.Background(), Input{Email: "unknown@test.test"})

	assert := suite.Require()
	assert.Nil(err)
	assert.False(result.Token.IsPresent)
	assert.Equal(0, suite.ResetLinkSender.SentCount())
}

func (suite *testSuite) TestMissingEmail() {
	_, err := suite.Service.Run(context.Background(), Input{Email: " "})

	suite.Require().ErrorIs(err, user.ErrMissingEmail)
	suite.Require().Equal(0, suite.ResetLinkSender.SentCount())
}

func (suite *testSuite) TestSendFailureKeepsIssuedToken() {
	ctx := context.Background()
	suite.ResetLinkSender.ReturnError = true

	_, err := suite.Service.Run(ctx, Input{Email: EMAIL})

	assert := suite.Require()
	assert.ErrorIs(err, user.ErrResetLinkNotSent)
	stored, err := suite.UserRepository.GetByID(ctx, suite.User.ID)
	assert.Nil(err)
	assert.True(stored.ResetToken.IsPresent)
	assert.Equal(1, suite.Logger.CountByLevel(logging.ERROR))
}

func (suite *testSuite) TestIssueFailure() {
	suite.PasswordResetter.ReturnError = true

	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})

	suite.Require().Error(err)
	suite.Require().Equal(0, suite.ResetLinkSender.SentCount())
}
