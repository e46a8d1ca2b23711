package http

import (
	"net/http"

	"clinic-appointment-service/internal/delivery/http/handler"
	"clinic-appointment-service/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	availabilityHandler *handler.AvailabilityHandler
	appointmentHandler  *handler.AppointmentHandler
	scheduleHandler     *handler.ScheduleHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	availabilityHandler *handler.AvailabilityHandler,
	appointmentHandler *handler.AppointmentHandler,
	scheduleHandler *handler.ScheduleHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		availabilityHandler: availabilityHandler,
		appointmentHandler:  appointmentHandler,
		scheduleHandler:     scheduleHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Availability (any authenticated user)
	availability := api.PathPrefix("/doctors").Subrouter()
	availability.Use(r.authMiddleware.Authenticate)
	availability.HandleFunc("/{doctorId}/availability", r.availabilityHandler.GetAvailability).Methods(http.MethodGet)

	// Appointments: booking is patient-only, the rest is shared between
	// the patient and the doctor on the appointment
	booking := api.PathPrefix("/appointments").Subrouter()
	booking.Use(r.authMiddleware.Authenticate)
	booking.Use(middleware.RequirePatient)
	booking.HandleFunc("", r.appointmentHandler.Book).Methods(http.MethodPost)

	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.Use(middleware.RequireDoctorOrPatient)
	appointments.HandleFunc("", r.appointmentHandler.List).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.Get).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.Update).Methods(http.MethodPatch)
	appointments.HandleFunc("/{id}", r.appointmentHandler.Cancel).Methods(http.MethodDelete)

	// Schedule management (doctor only)
	templates := api.PathPrefix("/schedule-templates").Subrouter()
	templates.Use(r.authMiddleware.Authenticate)
	templates.Use(middleware.RequireDoctor)
	templates.HandleFunc("", r.scheduleHandler.UpsertTemplate).Methods(http.MethodPut)
	templates.HandleFunc("", r.scheduleHandler.ListTemplates).Methods(http.MethodGet)
	templates.HandleFunc("/{id}", r.scheduleHandler.DeleteTemplate).Methods(http.MethodDelete)

	dayOffs := api.PathPrefix("/day-offs").Subrouter()
	dayOffs.Use(r.authMiddleware.Authenticate)
	dayOffs.Use(middleware.RequireDoctor)
	dayOffs.HandleFunc("", r.scheduleHandler.AddDayOff).Methods(http.MethodPost)
	dayOffs.HandleFunc("", r.scheduleHandler.ListDayOffs).Methods(http.MethodGet)
	dayOffs.HandleFunc("/{id}", r.scheduleHandler.DeleteDayOff).Methods(http.MethodDelete)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
