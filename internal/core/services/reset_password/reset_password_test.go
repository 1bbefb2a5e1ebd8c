package resetpassword

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
	RESET_TOKEN  = "0123456789abcdef0123456789abcdef"
	NEW_PASSWORD = user.RawPassword("new-password")
)

var NOW time.Time = time.Date(2024, 2, 3, 10, 20, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Logger           *logging.FakeLogger
	UserRepository   *user.FakeUserRepository
	PasswordHasher   *user.FakePasswordHasher
	PasswordResetter *user.FakePasswordResetter
	Now              time.Time
	Service          services.Service[Input, Result]
	User             user.User
}

func (suite *testSuite) SetupTest() {
	ctx := context.Background()
	suite.Now = NOW
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.PasswordHasher = user.NewFakePasswordHasher()
	suite.PasswordResetter = user.NewFakePasswordResetter(
		suite.UserRepository,
		user.NewFakeResetTokenGenerator(RESET_TOKEN),
		2*time.Hour,
		func() time.Time { return suite.Now },
	)
	suite.Service = New(suite.Logger, suite.PasswordResetter, suite.PasswordHasher)

	u, err := suite.UserRepository.Create(ctx, user.CreateUserInput{
		Email:        "test@test.test",
		PasswordHash: suite.PasswordHasher.HashPassword("old-password"),
		CreatedAt:    NOW,
	})
	suite.Require().Nil(err)
	_, err = suite.PasswordResetter.Issue(ctx, u)
	suite.Require().Nil(err)
	suite.User = u
}

func TestResetPasswordService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccess() {
	ctx := context.Background()
	_, err := suite.Service.Run(ctx, Input{Token: RESET_TOKEN, NewPassword: NEW_PASSWORD})

	assert := suite.Require()
	assert.Nil(err)
	stored, err := suite.UserRepository.GetByID(ctx, suite.User.ID)
	assert.Nil(err)
	assert.Equal(suite.PasswordHasher.HashPassword(NEW_PASSWORD), stored.PasswordHash)
	assert.False(stored.ResetToken.IsPresent)
	assert.False(stored.ResetTokenExpiresAt.IsPresent)
}

func (suite *testSuite) TestTokenIsSingleUse() {
	ctx := context.Background()
	_, err := suite.Service.Run(ctx, Input{Token: RESET_TOKEN, NewPassword: NEW_PASSWORD})
	suite.Require().Nil(err)

	_, err = suite.Service.Run(ctx, Input{Token: RESET_TOKEN, NewPassword: "another-password"})

	suite.Require().ErrorIs(err, user.ErrResetTokenNotFound)
	stored, _ := suite.UserRepository.GetByID(ctx, suite.User.ID)
	suite.Require().Equal(suite.PasswordHasher.HashPassword(NEW_PASSWORD), stored.PasswordHash)
}

func (suite *testSuite) TestUnknownToken() {
	_, err := suite.Service.Run(context.Background(), Input{Token: "unknown", NewPassword: NEW_PASSWORD})
	suite.Require().ErrorIs(err, user.ErrResetTokenNotFound)
}

func (suite *testSuite) TestExpiredToken() {
	ctx := context.Background()
	suite.Now = NOW.Add(2 * time.Hour)

	_, err := suite.Service.Run(ctx, Input{Token: RESET_TOKEN, NewPassword: NEW_PASSWORD})

	suite.Require().ErrorIs(err, user.ErrResetTokenExpired)
	stored, _ := suite.UserRepository.GetByID(ctx, suite.User.ID)
	suite.Require().Equal(suite.PasswordHasher.HashPassword("old-password"), stored.PasswordHash)
}

func (suite *testSuite) TestTokenValidJustBeforeExpiry() {
	suite.Now = NOW.Add(2*time.Hour - time.Second)

	_, err := suite.Service.Run(context.Background(), Input{Token: RESET_TOKEN, NewPassword: NEW_PASSWORD})

	suite.Require().Nil(err)
}

func (suite *testSuite) TestMissingFields() {
	cases := []Input{
		{Token: "", NewPassword: NEW_PASSWORD},
		{Token: RESET_TOKEN, NewPassword: " "},
	}
	for _, input := range cases {
		_, err := suite.Service.Run(context.Background(), input)
		suite.Require().ErrorIs(err, user.ErrMissingResetFields)
	}
}
