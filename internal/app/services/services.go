package services

import (
	"userapi/internal/app/deps"
	"userapi/internal/core/services"
	deleteuser "userapi/internal/core/services/delete_user"
	getuser "userapi/internal/core/services/get_user"
	listlocations "userapi/internal/core/services/list_locations"
	listusers "userapi/internal/core/services/list_users"
	loginwithemail "userapi/internal/core/services/log_in_with_email"
	resetpassword "userapi/internal/core/services/reset_password"
	sendpasswordresettoken "userapi/internal/core/services/send_password_reset_token"
	signupwithemail "userapi/internal/core/services/sign_up_with_email"
	updateuser "userapi/internal/core/services/update_user"
)

type Services struct {
	SignUpWithEmail        services.Service[signupwithemail.Input, signupwithemail.Result]
	LogInWithEmail         services.Service[loginwithemail.Input, loginwithemail.Result]
	SendPasswordResetToken services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	ResetPassword          services.Service[resetpassword.Input, resetpassword.Result]

	ListUsers  services.Service[listusers.Input, listusers.Result]
	GetUser    services.Service[getuser.Input, getuser.Result]
	UpdateUser services.Service[updateuser.Input, updateuser.Result]
	DeleteUser services.Service[deleteuser.Input, deleteuser.Result]

	ListLocations services.Service[listlocations.Input, listlocations.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUpWithEmail = signupwithemail.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.PasswordHasher,
		deps.Now,
	)
	s.LogInWithEmail = loginwithemail.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
	)
	s.SendPasswordResetToken = sendpasswordresettoken.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordResetter,
		deps.ResetLinkSender,
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.PasswordResetter,
		deps.PasswordHasher,
	)

	s.ListUsers = listusers.New(deps.Logger, deps.UserRepository)
	s.GetUser = getuser.New(deps.Logger, deps.UserRepository)
	s.UpdateUser = updateuser.New(deps.Logger, deps.UserRepository)
	s.DeleteUser = deleteuser.New(deps.Logger, deps.UserRepository)

	s.ListLocations = listlocations.New(deps.Logger, deps.LocationRepository)
	if deps.LocationsCache != nil {
		s.ListLocations = listlocations.WithCache(
			deps.Logger,
			deps.LocationsCache,
			deps.Config.LocationsCacheTTL,
			s.ListLocations,
		)
	}

	return s
}
