package loginwithemail

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	c "userapi/internal/core/domain/common"
	"userapi/internal/core/domain/user"
	"userapi/internal/core/services"
	loginwithemail "userapi/internal/core/services/log_in_with_email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(err error, u user.User) services.Service[loginwithemail.Input, loginwithemail.Result] {
	return services.ServiceFunc[loginwithemail.Input, loginwithemail.Result](
		func(ctx context.Context, input loginwithemail.Input) (loginwithemail.Result, error) {
			if err != nil {
				return loginwithemail.Result{}, err
			}
			return loginwithemail.Result{User: u, RoleName: u.RoleName()}, nil
		},
	)
}

func TestLogInWithEmailHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		serviceErr     error
		expectedStatus int
		expectedBody   string
	}{
		{
			id:             "invalid json",
			body:           `{"email": `,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request data"}`,
		},
		{
			id:             "missing credentials",
			body:           `{"email": "", "password": ""}`,
			serviceErr:     user.ErrMissingCredentials,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"email and password are required"}`,
		},
		{
			id:             "invalid credentials",
			body:           `{"email": "ada@example.com", "password": "wrong"}`,
			serviceErr:     user.ErrInvalidCredentials,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"invalid email or password"}`,
		},
		{
			id:             "store failure",
			body:           `{"email": "ada@example.com", "password": "secret"}`,
			serviceErr:     errors.New("connection reset"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal error"}`,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, "/accounts/login", strings.NewReader(testcase.body))
			if err != nil {
				t.Fatal(err)
			}

			rr := httptest.NewRecorder()
			New(newService(testcase.serviceErr, user.User{})).ServeHTTP(rr, req)

			assert.Equal(t, testcase.expectedStatus, rr.Code)
			assert.Equal(t, testcase.expectedBody, rr.Body.String())
		})
	}
}

func TestLogInWithEmailHandlerReturnsProfileAndRole(t *testing.T) {
	cases := []struct {
		id           string
		user         user.User
		expectedRole string
	}{
		{
			id:           "default role",
			user:         user.User{ID: 5, FirstName: "Ada", Email: "ada@example.com"},
			expectedRole: `"roleId":null,"roleName":"User"`,
		},
		{
			id: "explicit role",
			user: user.User{
				ID:    5,
				Email: "ada@example.com",
				Role:  c.NewOptional(user.Role{ID: 1, Name: "Admin"}, true),
			},
			expectedRole: `"roleId":1,"roleName":"Admin"`,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			req, err := http.NewRequest(
				http.MethodPost,
				"/accounts/login",
				strings.NewReader(`{"email": "ada@example.com", "password": "secret"}`),
			)
			require.Nil(t, err)

			rr := httptest.NewRecorder()
			New(newService(nil, testcase.user)).ServeHTTP(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)
			require.Contains(t, rr.Body.String(), `"userID":5`)
			require.Contains(t, rr.Body.String(), testcase.expectedRole)
		})
	}
}
