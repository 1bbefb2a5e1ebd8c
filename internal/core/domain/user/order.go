package user

import (
	"strings"
	c "userapi/internal/core/domain/common"
)

type OrderField struct {
	v string
}

var (
	OrderByID        = OrderField{v: "userid"}
	OrderByFullName  = OrderField{v: "fullname"}
	OrderByFirstName = OrderField{v: "firstname"}
	OrderByLastName  = OrderField{v: "lastname"}
	OrderByEmail     = OrderField{v: "email"}
	OrderByGender    = OrderField{v: "gender"}
	OrderByDob       = OrderField{v: "dob"}
	OrderByCountry   = OrderField{v: "country"}
)

func (f OrderField) String() string {
	return f.v
}

type Order struct {
	Field OrderField
	Desc  bool
}

var DefaultOrder = Order{Field: OrderByID}

// ParseOrder never fails: an unknown field falls back to the ID.
// An absent direction means ascending, a present one is descending
// unless it is "asc".
func ParseOrder(sortBy string, sortDir c.Optional[string]) Order {
	order := Order{Field: OrderByID}
	if sortDir.IsPresent {
		order.Desc = !strings.EqualFold(strings.TrimSpace(sortDir.Value), "asc")
	}
	switch strings.ToLower(strings.TrimSpace(sortBy)) {
	case "fullname":
		order.Field = OrderByFullName
	case "firstname":
		order.Field = OrderByFirstName
	case "lastname":
		order.Field = OrderByLastName
	case "email":
		order.Field = OrderByEmail
	case "gender":
		order.Field = OrderByGender
	case "dob":
		order.Field = OrderByDob
	case "country":
		order.Field = OrderByCountry
	}
	return order
}
