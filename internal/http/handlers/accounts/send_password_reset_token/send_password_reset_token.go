package sendpasswordresettoken

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	e "userapi/internal/core/domain/errors"
	"userapi/internal/core/domain/user"
	"userapi/internal/core/services"
	service "userapi/internal/core/services/send_password_reset_token"
	"userapi/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

// ResetLinkSentMessage is returned whether or not the email belongs to an account.
const ResetLinkSentMessage = "If the email exists, a reset link has been sent."

type Handler struct {
	service    services.Service[service.Input, service.Result]
	isTestMode bool
}

func New(
	service services.Service[service.Input, service.Result],
	isTestMode bool,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service, isTestMode: isTestMode}
}

type Input struct {
	Email string `json:"email"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Length(0, 512)),
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

	result, err := h.service.Run(r.Context(), service.Input{Email: input.Email})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrMissingEmail):
			response.RenderError(rw, err.Error(), http.StatusBadRequest)
		case errors.Is(err, user.ErrResetLinkNotSent):
			response.RenderError(rw, user.ErrResetLinkNotSent.Error(), http.StatusInternalServerError)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	if h.isTestMode && result.Token.IsPresent {
		rw.Header().Set("x-test-password-reset-token", string(result.Token.Value))
	}
	response.RenderMessage(rw, ResetLinkSentMessage, http.StatusOK)
}
