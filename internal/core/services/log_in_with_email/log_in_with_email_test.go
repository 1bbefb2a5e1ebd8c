package loginwithemail

import (
	"context"
	"testing"
	"time"
	c "userapi/internal/core/domain/common"
	"userapi/internal/core/domain/logging"
	"userapi/internal/core/domain/user"
	"userapi/internal/core/services"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL        = "test@test.test"
	RAW_PASSWORD = user.RawPassword("test-password")
)

var NOW time.Time = time.Date(2024, 2, 3, 10, 20, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UserRepository *user.FakeUserRepository
	PasswordHasher *user.FakePasswordHasher
	Service        services.Service[Input, Result]
	User           user.User
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.PasswordHasher = user.NewFakePasswordHasher()
	suite.Service = New(suite.Logger, suite.UserRepository, suite.PasswordHasher)

	u, err := suite.UserRepository.Create(context.Background(), user.CreateUserInput{
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        EMAIL,
		PasswordHash: suite.PasswordHasher.HashPassword(RAW_PASSWORD),
		CreatedAt:    NOW,
	})
	suite.Require().Nil(err)
	suite.User = u
}

func TestLogInWithEmailService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccessWithDefaultRole() {
	result, err := suite.Service.Run(context.Background(), Input{Email: EMAIL, Password: RAW_PASSWORD})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(suite.User.ID, result.User.ID)
	assert.Equal("Jane", result.User.FirstName)
	assert.Equal(user.DefaultRoleName, result.RoleName)
}

func (suite *testSuite) TestSuccessWithExplicitRole() {
	suite.UserRepository.Users[0].Role = c.NewOptional(user.Role{ID: 1, Name: "Admin"}, true)

	result, err := suite.Service.Run(context.Background(), Input{Email: " " + EMAIL + " ", Password: RAW_PASSWORD})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal("Admin", result.RoleName)
	assert.Equal(int64(1), result.User.Role.Value.ID)
}

func (suite *testSuite) TestWrongPassword() {
	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL, Password: "wrong"})
	suite.Require().ErrorIs(err, user.ErrInvalidCredentials)
}

func (suite *testSuite) TestUnknownEmailIsIndistinguishable() {
	_, unknownErr := suite.Service.Run(context.Background(), Input{Email: "unknown@test.test", Password: RAW_PASSWORD})
	_, wrongErr := suite.Service.Run(context.Background(), Input{Email: EMAIL, Password: "wrong"})

	suite.Require().ErrorIs(unknownErr, user.ErrInvalidCredentials)
	suite.Require().Equal(wrongErr.Error(), unknownErr.Error())
}

func (suite *testSuite) TestEmailIsCaseSensitive() {
	_, err := suite.Service.Run(context.Background(), Input{Email: "TEST@test.test", Password: RAW_PASSWORD})
	suite.Require().ErrorIs(err, user.ErrInvalidCredentials)
}

func (suite *testSuite) TestMissingCredentials() {
	cases := []Input{
		{Email: "", Password: RAW_PASSWORD},
		{Email: "  ", Password: RAW_PASSWORD},
		{Email: EMAIL, Password: ""},
		{},
	}
	for _, input := range cases {
		_, err := suite.Service.Run(context.Background(), input)
		suite.Require().ErrorIs(err, user.ErrMissingCredentials)
	}
}

func (suite *testSuite) TestRepositoryError() {
	suite.UserRepository.ReturnError = true

	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL, Password: RAW_PASSWORD})

	suite.Require().Error(err)
	suite.Require().NotErrorIs(err, user.ErrInvalidCredentials)
	suite.Require().Equal(1, suite.Logger.CountByLevel(logging.ERROR))
}
