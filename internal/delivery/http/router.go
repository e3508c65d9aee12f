package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventhub/internal/delivery/http/controllers"
	"eventhub/internal/delivery/http/helpers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	userController *controllers.UserController,
	eventController *controllers.EventController,
	registrationController *controllers.RegistrationController,
	chatController *controllers.ChatController,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Users
	mux.HandleFunc("POST /users", userController.CreateUser)
	mux.HandleFunc("GET /users", userController.ListUsers)
	mux.HandleFunc("GET /users/{userID}", userController.GetUser)

	// Events
	mux.HandleFunc("POST /events", eventController.CreateEvent)
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEvent)
	mux.HandleFunc("PATCH /events/{eventID}/approve", eventController.ApproveEvent)
	mux.HandleFunc("GET /events/{eventID}/messages", chatController.ListMessages)

	// Registrations
	mux.HandleFunc("POST /registrations", registrationController.Register)
	mux.HandleFunc("GET /registrations/by-event/{eventID}", registrationController.ListByEvent)
	mux.HandleFunc("DELETE /registrations/{registrationID}", registrationController.Unregister)

	// Chat
	mux.HandleFunc("GET /ws/events/{eventID}", chatController.ServeWS)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	mux.HandleFunc("GET /{$}", home)

	return mux
}

func home(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{
		"message": "Event Hub API",
		"docs":    "/swagger/index.html",
	})
}
