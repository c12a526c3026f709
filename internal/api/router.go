package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/g3techvn/g-3.vn-sub004/internal/api/handlers"
	"github.com/g3techvn/g-3.vn-sub004/internal/api/middleware"
	"github.com/g3techvn/g-3.vn-sub004/internal/cache"
	"github.com/g3techvn/g-3.vn-sub004/internal/ordertoken"
	"github.com/g3techvn/g-3.vn-sub004/internal/ratelimit"
	"github.com/g3techvn/g-3.vn-sub004/internal/repository"
	"github.com/g3techvn/g-3.vn-sub004/internal/service"
)

// Deps holds everything the router wires into handlers. The in-memory
// components are constructed once in main and injected so tests and
// shutdown control their lifetime.
type Deps struct {
	DB          *sql.DB
	Limiter     ratelimit.Store
	Tokens      *ordertoken.Issuer
	Memo        *cache.Cache
	OrderSecret string
	Logger      *zap.Logger
}

// NewRouter builds the HTTP router for the storefront API.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	voucherService := service.NewVoucherService(
		repository.NewVoucherRepo(deps.DB),
		repository.NewUsageRepo(deps.DB),
		deps.Memo,
		deps.Logger,
	)
	voucherHandler := handlers.NewVoucherHandler(voucherService, deps.Logger)
	orderHandler := handlers.NewOrderHandler(
		repository.NewOrderRepo(deps.DB),
		deps.Tokens,
		deps.OrderSecret,
		deps.Logger,
	)

	r.Route("/api", func(r chi.Router) {
		r.Route("/vouchers", func(r chi.Router) {
			r.Use(middleware.RateLimit(deps.Limiter, ratelimit.API, deps.Logger))
			r.Post("/validate", voucherHandler.Validate)
		})
		r.Route("/orders", func(r chi.Router) {
			r.With(middleware.RateLimit(deps.Limiter, ratelimit.OrderPlacement, deps.Logger)).
				Post("/{orderID}/access-token", orderHandler.IssueToken)
			r.With(middleware.RateLimit(deps.Limiter, ratelimit.PublicRead, deps.Logger)).
				Get("/confirmation", orderHandler.Confirmation)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"endpoint not found"}`))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = w.Write([]byte(`{"error":"method not allowed"}`))
	})

	return r
}
