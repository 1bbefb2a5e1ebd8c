package signupwithemail

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	c "userapi/internal/core/domain/common"
	"userapi/internal/core/domain/user"
	"userapi/internal/core/services"
	signupwithemail "userapi/internal/core/services/sign_up_with_email"

	"github.com/stretchr/testify/assert"
)

type stubService struct {
	err   error
	input *signupwithemail.Input
}

func (s *stubService) Run(
	ctx context.Context,
	input signupwithemail.Input,
) (result signupwithemail.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	result.User = user.User{
		ID:        42,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Dob:       c.NewOptional(c.NewDate(1990, time.January, 31), true),
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	return result, nil
}

var _ services.Service[signupwithemail.Input, signupwithemail.Result] = (*stubService)(nil)

func TestSignUpWithEmailHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		serviceErr     error
		expectedStatus int
		expectedBody   string
	}{
		{
			id:             "created",
			body:           `{"firstName": "Ada", "lastName": "L", "email": "ada@example.com", "password": "secret", "dob": "31/01/1990"}`,
			expectedStatus: http.StatusCreated,
			expectedBody:   `"userID":42`,
		},
		{
			id:             "empty body",
			body:           ``,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request data"}`,
		},
		{
			id:             "too long email",
			body:           fmt.Sprintf(`{"email": "%s", "password": "secret"}`, strings.Repeat("a", 513)),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"email"`,
		},
		{
			id:             "missing email",
			body:           `{"password": "secret"}`,
			serviceErr:     user.ErrMissingEmail,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"email is required"}`,
		},
		{
			id:             "missing password",
			body:           `{"email": "ada@example.com"}`,
			serviceErr:     user.ErrMissingPassword,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"password is required"}`,
		},
		{
			id:             "invalid date",
			body:           `{"email": "ada@example.com", "password": "secret", "dob": "not-a-date"}`,
			serviceErr:     fmt.Errorf("%w: %q", c.ErrInvalidDate, "not-a-date"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid date of birth"}`,
		},
		{
			id:             "duplicate",
			body:           `{"email": "ada@example.com", "password": "secret"}`,
			serviceErr:     user.ErrEmailAlreadyExists,
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"email already registered"}`,
		},
		{
			id:             "store failure",
			body:           `{"email": "ada@example.com", "password": "secret"}`,
			serviceErr:     errors.New("connection refused"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal error"}`,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, "/accounts", strings.NewReader(testcase.body))
			if err != nil {
				t.Fatal(err)
			}

			service := &stubService{err: testcase.serviceErr}
			rr := httptest.NewRecorder()
			New(service).ServeHTTP(rr, req)

			assert.Equal(t, testcase.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), testcase.expectedBody)
		})
	}
}

func TestSignUpWithEmailHandlerPassesFields(t *testing.T) {
	body := `{
		"firstName": " Ada ",
		"lastName": "Lovelace",
		"email": "ada@example.com",
		"password": "secret",
		"gender": "F",
		"dob": "1990-01-31",
		"country": "UK",
		"address": "Street 1",
		"profileImagePath": "/img/ada.png",
		"isTermsAccepted": true,
		"state": "London",
		"city": "London"
	}`
	req, err := http.NewRequest(http.MethodPost, "/accounts", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	service := &stubService{}
	rr := httptest.NewRecorder()
	New(service).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "/accounts/42", rr.Header().Get("Location"))
	assert.Contains(t, rr.Body.String(), `"dob":"1990-01-31"`)
	assert.Equal(t, &signupwithemail.Input{
		FirstName:        " Ada ",
		LastName:         "Lovelace",
		Email:            "ada@example.com",
		Password:         user.RawPassword("secret"),
		Gender:           "F",
		Dob:              "1990-01-31",
		Country:          "UK",
		State:            "London",
		City:             "London",
		Address:          "Street 1",
		ProfileImagePath: "/img/ada.png",
		IsTermsAccepted:  true,
	}, service.input)
}
