package getuser

import (
	"errors"
	"net/http"
	e "userapi/internal/core/domain/errors"
	"userapi/internal/core/domain/user"
	"userapi/internal/core/services"
	service "userapi/internal/core/services/get_user"
	"userapi/internal/http/handlers/accounts"
	"userapi/internal/http/handlers/response"
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

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	userID, ok := accounts.ParseUserID(r)
	if !ok {
		response.RenderNotFound(rw, user.ErrUserDoesNotExist.Error())
		return
	}

	result, err := h.service.Run(r.Context(), service.Input{UserID: userID})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderNotFound(rw, err.Error())
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	u := response.User{}
	u.FromDomainUser(result.User)
	response.Render(rw, u, http.StatusOK)
}
