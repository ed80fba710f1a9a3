package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

type RouterOptions struct {
	// Registry - куда писать метрики; nil отключает /metrics
	Registry    *prometheus.Registry
	MetricsPath string
}

// NewRouter собирает все маршруты. Любой ответ разрешает доступ с любого origin.
func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(h.log))
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}).Handler)

	if opts.Registry != nil {
		r.Use(NewMetrics(opts.Registry).Middleware)
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Method(http.MethodGet, path, promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	}

	r.Get("/", h.PingHandler)

	r.Route("/service_request", func(r chi.Router) {
		r.Get("/", h.ListServiceRequestsHandler)
		r.Post("/", h.CreateServiceRequestHandler)
		r.Get("/{id}", h.GetServiceRequestHandler)
		r.Put("/{id}", h.UpdateServiceRequestHandler)
		r.Delete("/{id}", h.DeleteServiceRequestHandler)
	})
	r.Route("/service_item", func(r chi.Router) {
		r.Get("/", h.ListServiceItemsHandler)
		r.Post("/", h.CreateServiceItemHandler)
		r.Get("/{id}", h.GetServiceItemHandler)
		r.Put("/{id}", h.UpdateServiceItemHandler)
		r.Delete("/{id}", h.DeleteServiceItemHandler)
	})
	r.Route("/comment", func(r chi.Router) {
		r.Get("/", h.ListCommentsHandler)
		r.Post("/", h.CreateCommentHandler)
		r.Get("/{id}", h.GetCommentHandler)
		r.Put("/{id}", h.UpdateCommentHandler)
		r.Delete("/{id}", h.DeleteCommentHandler)
	})
	r.Route("/employee", func(r chi.Router) {
		r.Get("/", h.ListEmployeesHandler)
		r.Post("/", h.CreateEmployeeHandler)
		r.Get("/{id}", h.GetEmployeeHandler)
		r.Put("/{id}", h.UpdateEmployeeHandler)
		r.Delete("/{id}", h.DeleteEmployeeHandler)
	})
	r.Route("/service", func(r chi.Router) {
		r.Get("/", h.ListServicesHandler)
		r.Post("/", h.CreateServiceHandler)
		r.Get("/{id}", h.GetServiceHandler)
		r.Put("/{id}", h.UpdateServiceHandler)
		r.Delete("/{id}", h.DeleteServiceHandler)
	})

	return r
}

// RequestLogger пишет одну строку logrus на запрос
func RequestLogger(logger logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.WithFields(logrus.Fields{
					"request_id": middleware.GetReqID(r.Context()),
					"method":     r.Method,
					"path":       r.URL.Path,
					"remote":     r.RemoteAddr,
					"status":     ww.Status(),
					"bytes":      ww.BytesWritten(),
					"duration":   time.Since(start).String(),
				}).Info("request")
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
