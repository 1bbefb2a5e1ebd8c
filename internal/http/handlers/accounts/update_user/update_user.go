package updateuser

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
	c "userapi/internal/core/domain/common"
	e "userapi/internal/core/domain/errors"
	"userapi/internal/core/domain/user"
	"userapi/internal/core/services"
	service "userapi/internal/core/services/update_user"
	"userapi/internal/http/handlers/accounts"
	"userapi/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

// Input fields left blank or omitted keep their stored values.
// Dob is a date in any accepted text form and wins over DobDate.
type Input struct {
	FirstName        string     `json:"firstName"`
	LastName         string     `json:"lastName"`
	Email            string     `json:"email"`
	Gender           string     `json:"gender"`
	Dob              string     `json:"dob"`
	DobDate          *time.Time `json:"dobDate"`
	Country          string     `json:"country"`
	Address          string     `json:"address"`
	ProfileImagePath string     `json:"profileImagePath"`
	State            string     `json:"state"`
	City             string     `json:"city"`
}

type Result struct {
	Message string        `json:"message"`
	User    response.User `json:"user"`
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
	userID, ok := accounts.ParseUserID(r)
	if !ok {
		response.RenderNotFound(rw, user.ErrUserDoesNotExist.Error())
		return
	}

	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	var dob c.Optional[c.Date]
	if input.DobDate != nil {
		dob = c.NewOptional(c.DateOf(*input.DobDate), true)
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			UserID:           userID,
			FirstName:        input.FirstName,
			LastName:         input.LastName,
			Email:            input.Email,
			Gender:           input.Gender,
			DobText:          input.Dob,
			Dob:              dob,
			Country:          input.Country,
			State:            input.State,
			City:             input.City,
			Address:          input.Address,
			ProfileImagePath: input.ProfileImagePath,
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderNotFound(rw, err.Error())
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
	response.Render(rw, Result{Message: "Updated Successfully", User: u}, http.StatusOK)
}
