package listusers

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
	service "userapi/internal/core/services/list_users"

	"github.com/stretchr/testify/assert"
)

type stubService struct {
	users []user.User
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	s.input = &input
	result.Users = s.users
	result.Order = user.ParseOrder(input.SortBy, input.SortDir)
	return result, nil
}

var _ services.Service[service.Input, service.Result] = (*stubService)(nil)

func TestListUsersHandler(t *testing.T) {
	cases := []struct {
		url            string
		users          []user.User
		err            error
		expectedStatus int
		expectedInput  *service.Input
		expectedBody   string
	}{
		{
			url:            "/accounts",
			expectedStatus: http.StatusOK,
			expectedInput:  &service.Input{},
			expectedBody:   `[]`,
		},
		{
			url:            "/accounts?sortBy=fullname&sortDir=desc",
			users:          []user.User{{ID: 2, FirstName: "B"}, {ID: 1, FirstName: "A"}},
			expectedStatus: http.StatusOK,
			expectedInput:  &service.Input{SortBy: "fullname", SortDir: c.NewOptional("desc", true)},
		},
		{
			url:            "/accounts?sortBy=unknown&sortDir=sideways",
			expectedStatus: http.StatusOK,
			expectedInput:  &service.Input{SortBy: "unknown", SortDir: c.NewOptional("sideways", true)},
			expectedBody:   `[]`,
		},
		{
			url:            "/accounts?sortBy=email&sortDir=",
			expectedStatus: http.StatusOK,
			expectedInput:  &service.Input{SortBy: "email", SortDir: c.NewOptional("", true)},
			expectedBody:   `[]`,
		},
		{
			url:            "/accounts?sortBy=email",
			expectedStatus: http.StatusOK,
			expectedInput:  &service.Input{SortBy: "email"},
			expectedBody:   `[]`,
		},
		{
			url:            "/accounts",
			err:            errors.New("connection refused"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal error"}`,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.url, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, testcase.url, nil)
			if err != nil {
				t.Fatal(err)
			}

			service := &stubService{users: testcase.users, err: testcase.err}
			rr := httptest.NewRecorder()
			New(service).ServeHTTP(rr, req)

			assert.Equal(t, testcase.expectedStatus, rr.Code)
			assert.Equal(t, testcase.expectedInput, service.input)
			if testcase.expectedBody != "" {
				assert.Equal(t, testcase.expectedBody, rr.Body.String())
			}
		})
	}
}

func TestListUsersHandlerKeepsServiceOrder(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "/accounts?sortBy=userid&sortDir=desc", nil)
	if err != nil {
		t.Fatal(err)
	}

	service := &stubService{users: []user.User{{ID: 3}, {ID: 2}, {ID: 1}}}
	rr := httptest.NewRecorder()
	New(service).ServeHTTP(rr, req)

	body := rr.Body.String()
	assert.Equal(t, http.StatusOK, rr.Code)
	first := strings.Index(body, `"userID":3`)
	second := strings.Index(body, `"userID":2`)
	third := strings.Index(body, `"userID":1`)
	assert.True(t, first >= 0 && first < second && second < third, body)
}
