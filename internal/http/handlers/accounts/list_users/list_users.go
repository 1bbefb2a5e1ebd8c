package listusers

import (
	"net/http"
	c "userapi/internal/core/domain/common"
	e "userapi/internal/core/domain/errors"
	"userapi/internal/core/services"
	service "userapi/internal/core/services/list_users"
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

// ServeHTTP never rejects sorting parameters: unknown keys fall back to
// the defaults. A sortDir given with an empty value still counts as present.
func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	input := service.Input{SortBy: query.Get("sortBy")}
	if _, ok := query["sortDir"]; ok {
		input.SortDir = c.NewOptional(query.Get("sortDir"), true)
	}

	result, err := h.service.Run(r.Context(), input)
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Render(rw, response.FromDomainUsers(result.Users), http.StatusOK)
}
