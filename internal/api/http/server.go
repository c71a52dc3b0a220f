package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	"github.com/elarafragrance/elara-backend/internal/analytics"
	"github.com/elarafragrance/elara-backend/internal/auth/pwhash"
	"github.com/elarafragrance/elara-backend/internal/dependency"
	"github.com/elarafragrance/elara-backend/internal/ratelimit"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"
)

type Config struct {
	Address        string        `mapstructure:"address"`
	Port           string        `mapstructure:"port"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	JWTSecret      string        `mapstructure:"jwt_secret"`
	SessionTTL     time.Duration `mapstructure:"session_ttl"`
	// DefaultCommissionPct applies to delivery agents that have no commission
	// percentage of their own.
	DefaultCommissionPct float64 `mapstructure:"default_commission_pct"`
}

// Server is the REST surface: storefront routes, the authenticated customer
// surface, the delivery agent surface and the admin console API.
type Server struct {
	c         *Config
	rep       dependency.Repository
	mailer    dependency.Mailer
	fileStore dependency.FileStore
	invoicer  dependency.Invoicer
	analytics *analytics.Service

	jwtAuth *jwtauth.JWTAuth
	hasher  *pwhash.PasswordHasher
	limiter *ratelimit.MultiKeyLimiter

	srv *http.Server
}

func New(
	c *Config,
	rep dependency.Repository,
	mailer dependency.Mailer,
	fileStore dependency.FileStore,
	invoicer dependency.Invoicer,
) (*Server, error) {
	if c.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = 24 * time.Hour
	}

	hasher, err := pwhash.New(16, 100000)
	if err != nil {
		return nil, fmt.Errorf("can't create password hasher: %w", err)
	}

	return &Server{
		c:         c,
		rep:       rep,
		mailer:    mailer,
		fileStore: fileStore,
		invoicer:  invoicer,
		analytics: analytics.New(rep),
		jwtAuth:   jwtauth.New("HS256", []byte(c.JWTSecret), nil),
		hasher:    hasher,
		limiter:   ratelimit.NewMultiKeyLimiter(),
	}, nil
}

func (s *Server) router() chi.Router {
	r := chi.NewRouter()

	c := cors.New(cors.Options{
		AllowedOrigins: s.c.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodOptions,
			http.MethodDelete,
		},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	r.Use(c.Handler)
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// coarse per-IP flood guard; the storefront-specific limits live in the
	// MultiKeyLimiter
	r.Use(httprate.Limit(
		60,
		15*time.Second,
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		// public storefront
		r.Get("/products", s.listProducts)
		r.Get("/products/{id}", s.getProduct)
		r.Get("/products/{id}/reviews", s.listProductReviews)
		r.Get("/categories", s.listCategories)

		r.Post("/auth/signup", s.signup)
		r.Post("/auth/login", s.login)
		r.Post("/auth/logout", s.logout)

		// authenticated customer surface
		r.Group(func(r chi.Router) {
			r.Use(s.sessionCtx)
			r.Get("/auth/me", s.me)
			r.Post("/auth/password", s.changePassword)

			r.Post("/checkout", s.checkout)
			r.Get("/orders", s.listMyOrders)
			r.Get("/orders/{uuid}", s.getMyOrder)
			r.Post("/orders/{uuid}/cancel", s.cancelMyOrder)

			r.Post("/products/{id}/reviews", s.postReview)
		})

		// delivery agent surface
		r.Route("/agent", func(r chi.Router) {
			r.Use(s.sessionCtx)
			r.Use(s.requireRole(roleAgent))
			r.Get("/orders", s.agentOrders)
			r.Post("/orders/{uuid}/otp", s.resendDeliveryOTP)
			r.Post("/orders/{uuid}/deliver", s.verifyDeliveryOTP)
		})

		// admin console
		r.Route("/admin", func(r chi.Router) {
			r.Use(s.sessionCtx)
			r.Use(s.requireRole(roleAdmin))

			r.Post("/products", s.addProduct)
			r.Put("/products/{id}", s.updateProduct)
			r.Post("/products/{id}/archive", s.archiveProduct)
			r.Delete("/products/{id}", s.deleteProduct)
			r.Post("/products/image", s.uploadProductImage)

			r.Post("/categories", s.addCategory)
			r.Delete("/categories/{id}", s.deleteCategory)

			r.Post("/promos", s.addPromo)
			r.Get("/promos", s.listPromos)
			r.Post("/promos/{code}/disable", s.disablePromo)
			r.Delete("/promos/{code}", s.deletePromo)

			r.Get("/orders", s.listOrders)
			r.Post("/orders/{uuid}/status", s.setOrderStatus)
			r.Post("/orders/{uuid}/assign", s.assignAgent)

			r.Get("/accounts", s.listAccounts)
			r.Post("/accounts/agents", s.addAgent)

			r.Delete("/reviews/{id}", s.deleteReview)

			r.Get("/analytics", s.dashboard)
		})
	})

	return r
}

// Start runs the HTTP server until the context is cancelled, then shuts it
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:              s.c.Address + ":" + s.c.Port,
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Default().InfoContext(ctx, "http server listening",
			slog.String("addr", s.srv.Addr),
		)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	}
}
