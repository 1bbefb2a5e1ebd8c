package response

import (
	"userapi/internal/core/domain/user"
)

// User is the public projection of an account. Absent text fields are
// rendered as empty strings, an absent date of birth as null.
type User struct {
	ID               int64   `json:"userID"`
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	Email            string  `json:"email"`
	Gender           string  `json:"gender"`
	Dob              *string `json:"dob"`
	Country          string  `json:"country"`
	Address          string  `json:"address"`
	ProfileImagePath string  `json:"profileImagePath"`
	State            string  `json:"state"`
	City             string  `json:"city"`
}

func (u *User) FromDomainUser(du user.User) {
	u.ID = int64(du.ID)
	u.FirstName = du.FirstName
	u.LastName = du.LastName
	u.Email = du.Email
	u.Gender = du.Gender.ValueOr("")
	if du.Dob.IsPresent {
		dob := du.Dob.Value.String()
		u.Dob = &dob
	}
	u.Country = du.Country.ValueOr("")
	u.Address = du.Address.ValueOr("")
	u.ProfileImagePath = du.ProfileImagePath.ValueOr("")
	u.State = du.State.ValueOr("")
	u.City = du.City.ValueOr("")
}

func FromDomainUsers(users []user.User) []User {
	result := make([]User, 0, len(users))
	for _, du := range users {
		u := User{}
		u.FromDomainUser(du)
		result = append(result, u)
	}
	return result
}

// UserWithRole is returned on login.
type UserWithRole struct {
	User
	RoleID   *int64 `json:"roleId"`
	RoleName string `json:"roleName"`
}

func (u *UserWithRole) FromDomainUser(du user.User) {
	u.User.FromDomainUser(du)
	if du.Role.IsPresent {
		roleID := du.Role.Value.ID
		u.RoleID = &roleID
	}
	u.RoleName = du.RoleName()
}
