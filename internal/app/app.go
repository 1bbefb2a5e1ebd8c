package app

import (
	"fmt"
	"net/http"
	"time"
	"userapi/internal/app/deps"
	"userapi/internal/app/services"
	listlocationsservice "userapi/internal/core/services/list_locations"
	"userapi/internal/http/handlers/accounts"
	deleteuser "userapi/internal/http/handlers/accounts/delete_user"
	getuser "userapi/internal/http/handlers/accounts/get_user"
	listlocations "userapi/internal/http/handlers/accounts/list_locations"
	listusers "userapi/internal/http/handlers/accounts/list_users"
	loginwithemail "userapi/internal/http/handlers/accounts/log_in_with_email"
	resetpassword "userapi/internal/http/handlers/accounts/reset_password"
	sendpasswordresettoken "userapi/internal/http/handlers/accounts/send_password_reset_token"
	signupwithemail "userapi/internal/http/handlers/accounts/sign_up_with_email"
	updateuser "userapi/internal/http/handlers/accounts/update_user"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

const readHeaderTimeout = 10 * time.Second

func NewRouter(s *services.Services, allowedOrigins []string, isTestMode bool) *chi.Mux {
	userPath := fmt.Sprintf("/{%s:[0-9]+}", accounts.USER_ID_URL_PARAM)

	accountsRouter := chi.NewRouter()
	accountsRouter.Method(http.MethodPost, "/", signupwithemail.New(s.SignUpWithEmail))
	accountsRouter.Method(http.MethodGet, "/", listusers.New(s.ListUsers))
	accountsRouter.Method(http.MethodPost, "/login", loginwithemail.New(s.LogInWithEmail))
	accountsRouter.Method(
		http.MethodPost,
		"/reset-link",
		sendpasswordresettoken.New(s.SendPasswordResetToken, isTestMode),
	)
	accountsRouter.Method(http.MethodPost, "/reset-password", resetpassword.New(s.ResetPassword))
	accountsRouter.Method(
		http.MethodGet,
		"/countries",
		listlocations.New(s.ListLocations, listlocationsservice.Countries),
	)
	accountsRouter.Method(http.MethodGet, "/states", listlocations.New(s.ListLocations, listlocationsservice.States))
	accountsRouter.Method(http.MethodGet, "/cities", listlocations.New(s.ListLocations, listlocationsservice.Cities))
	accountsRouter.Method(http.MethodGet, userPath, getuser.New(s.GetUser))
	accountsRouter.Method(http.MethodPut, userPath, updateuser.New(s.UpdateUser))
	accountsRouter.Method(http.MethodDelete, userPath, deleteuser.New(s.DeleteUser))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Location", "x-test-password-reset-token"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/accounts", accountsRouter)
	return router
}

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	router := NewRouter(s, deps.Config.AllowedOrigins, deps.Config.IsTestMode)
	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler:           router,
		Addr:              address,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
