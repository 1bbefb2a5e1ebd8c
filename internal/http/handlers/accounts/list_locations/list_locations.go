package listlocations

import (
	"errors"
	"net/http"
	e "userapi/internal/core/domain/errors"
	"userapi/internal/core/services"
	service "userapi/internal/core/services/list_locations"
	"userapi/internal/http/handlers/response"
)

type Handler struct {
	service     services.Service[service.Input, service.Result]
	level       service.Level
	parentParam string
}

// New serves one dropdown level. States are filtered by the "country"
// query parameter and cities by "state".
func New(
	service services.Service[service.Input, service.Result],
	level service.Level,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service, level: level, parentParam: parentParam(level)}
}

func parentParam(level service.Level) string {
	switch level {
	case service.States:
		return "country"
	case service.Cities:
		return "state"
	default:
		return ""
	}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := service.Input{Level: h.level}
	if h.parentParam != "" {
		input.Parent = r.URL.Query().Get(h.parentParam)
	}

	result, err := h.service.Run(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingParent):
			response.RenderError(rw, h.parentParam+" is required", http.StatusBadRequest)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.Render(rw, result.Values, http.StatusOK)
}
