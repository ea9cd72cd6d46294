package http

import (
	"net/http"

	"clinic-intake/internal/delivery/http/handler"
	"clinic-intake/internal/delivery/http/middleware"
	"clinic-intake/pkg/response"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

type Router struct {
	router                    *mux.Router
	serviceName               string
	intakeHandler             *handler.IntakeHandler
	requestLoggerMiddleware   *middleware.RequestLoggerMiddleware
	securityHeadersMiddleware *middleware.SecurityHeadersMiddleware
	dbScopeMiddleware         *middleware.DBScopeMiddleware
}

func NewRouter(
	serviceName string,
	intakeHandler *handler.IntakeHandler,
	requestLoggerMiddleware *middleware.RequestLoggerMiddleware,
	securityHeadersMiddleware *middleware.SecurityHeadersMiddleware,
	dbScopeMiddleware *middleware.DBScopeMiddleware,
) *Router {
	return &Router{
		router:                    mux.NewRouter(),
		serviceName:               serviceName,
		intakeHandler:             intakeHandler,
		requestLoggerMiddleware:   requestLoggerMiddleware,
		securityHeadersMiddleware: securityHeadersMiddleware,
		dbScopeMiddleware:         dbScopeMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Intake form
	r.router.HandleFunc("/", r.intakeHandler.ShowForm).Methods(http.MethodGet)
	r.router.HandleFunc("/submit", r.intakeHandler.SubmitForm).Methods(http.MethodPost)

	r.router.Use(otelmux.Middleware(r.serviceName))
	r.router.Use(r.requestLoggerMiddleware.Handle)
	r.router.Use(r.securityHeadersMiddleware.Handle)
	r.router.Use(r.dbScopeMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
