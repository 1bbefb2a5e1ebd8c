package accounts

import (
	"net/http"
	"strconv"
	"userapi/internal/core/domain/user"

	"github.com/go-chi/chi/v5"
)

const USER_ID_URL_PARAM = "userID"

// ParseUserID reads the account id from the route. A value that does
// not fit into an id can not address an existing account.
func ParseUserID(r *http.Request) (id user.ID, ok bool) {
	raw := chi.URLParam(r, USER_ID_URL_PARAM)
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || parsed < 1 {
		return id, false
	}
	return user.ID(parsed), true
}
