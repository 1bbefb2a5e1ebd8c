package signupwithemail

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	c "userapi/internal/core/domain/common"
	e "userapi/internal/core/domain/errors"
	"userapi/internal/core/domain/user"
	"userapi/internal/core/services"
	signupwithemail "userapi/internal/core/services/sign_up_with_email"
	"userapi/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[signupwithemail.Input, signupwithemail.Result]
}

func New(
	service services.Service[signupwithemail.Input, signupwithemail.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	Gender           string `json:"gender"`
	Dob              string `json:"dob"`
	Country          string `json:"country"`
	Address          string `json:"address"`
	ProfileImagePath string `json:"profileImagePath"`
	IsTermsAccepted  bool   `json:"isTermsAccepted"`
	State            string `json:"state"`
	City             string `json:"city"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.FirstName, validation.Length(0, 256)),
		validation.Field(&i.LastName, validation.Length(0, 256)),
		validation.Field(&i.Email, validation.Length(0, 512)),
		validation.Field(&i.Password, validation.Length(0, 512)),
		validation.Field(&i.Gender, validation.Length(0, 64)),
		validation.Field(&i.Dob, validation.Length(0, 64)),
		validation.Field(&i.Country, validation.Length(0, 256)),
		validation.Field(&i.Address, validation.Length(0, 1024)),
		validation.Field(&i.ProfileImagePath, validation.Length(0, 1024)),
		validation.Field(&i.State, validation.Length(0, 256)),
		validation.Field(&i.City, validation.Length(0, 256)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		signupwithemail.Input{
			FirstName:        input.FirstName,
			LastName:         input.LastName,
			Email:            input.Email,
			Password:         user.RawPassword(input.Password),
			Gender:           input.Gender,
			Dob:              input.Dob,
			Country:          input.Country,
			State:            input.State,
			City:             input.City,
			Address:          input.Address,
			ProfileImagePath: input.ProfileImagePath,
			IsTermsAccepted:  input.IsTermsAccepted,
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrMissingEmail), errors.Is(err, user.ErrMissingPassword):
			response.RenderError(rw, err.Error(), http.StatusBadRequest)
		case errors.Is(err, c.ErrInvalidDate):
			response.RenderError(rw, "invalid date of birth", http.StatusBadRequest)
		case errors.Is(err, user.ErrEmailAlreadyExists):
			response.RenderError(rw, err.Error(), http.StatusConflict)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	u := response.User{}
	u.FromDomainUser(result.User)
	rw.Header().Set("Location", fmt.Sprintf("/accounts/%d", result.User.ID))
	response.Render(rw, u, http.StatusCreated)
}
