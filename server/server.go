package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/didip/tollbooth/v8"
	"github.com/didip/tollbooth/v8/limiter"
	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"github.com/go-playground/validator/v10"

	"github.com/umputun/finfeed/pkg/domain"
	"github.com/umputun/finfeed/pkg/news"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/auth.go -pkg mocks -skip-ensure -fmt goimports . Authenticator
//go:generate moq -out mocks/news.go -pkg mocks -skip-ensure -fmt goimports . NewsService
//go:generate moq -out mocks/saved.go -pkg mocks -skip-ensure -fmt goimports . SavedStore
//go:generate moq -out mocks/health.go -pkg mocks -skip-ensure -fmt goimports . HealthChecker

// Server represents HTTP server instance
type Server struct {
	config   ConfigProvider
	auth     Authenticator
	news     NewsService
	saved    SavedStore
	health   HealthChecker
	validate *validator.Validate
	version  string
	debug    bool

	rateLimit  int
	rateWindow time.Duration

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// Authenticator registers and logs in users and resolves bearer tokens
type Authenticator interface {
	Register(ctx context.Context, email, password string) (*domain.User, *domain.Token, error)
	Login(ctx context.Context, email, password string) (*domain.User, *domain.Token, error)
	Authenticate(ctx context.Context, plaintext string) (*domain.User, error)
	Logout(ctx context.Context, userID int64) error
}

// NewsService returns the news feed, never failing on provider errors
type NewsService interface {
	GetNews(ctx context.Context, q domain.Query, opts news.Options) domain.Feed
}

// SavedStore keeps per-user saved articles
type SavedStore interface {
	Save(ctx context.Context, userID int64, article domain.SavedArticle) error
	List(ctx context.Context, userID int64) ([]domain.SavedArticle, error)
	Delete(ctx context.Context, userID int64, url string) error
	DeleteByID(ctx context.Context, userID, id int64) error
	IsSaved(ctx context.Context, userID int64, url string) (bool, error)
}

// HealthChecker reports database connectivity
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Params for New
type Params struct {
	Config  ConfigProvider
	Auth    Authenticator
	News    NewsService
	Saved   SavedStore
	Health  HealthChecker
	Version string
	Debug   bool

	RateLimit  int           // requests per client ip within RateWindow on /api, 0 disables
	RateWindow time.Duration // defaults to 15 minutes
}

// New initializes a new server instance
func New(p Params) *Server {
	s := &Server{
		config:   p.Config,
		auth:     p.Auth,
		news:     p.News,
		saved:    p.Saved,
		health:   p.Health,
		validate: newValidator(),
		version:  p.Version,
		debug:    p.Debug,
		router:   routegroup.New(http.NewServeMux()),

		rateLimit:  p.RateLimit,
		rateWindow: p.RateWindow,
	}
	if s.rateWindow <= 0 {
		s.rateWindow = 15 * time.Minute
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("finfeed", "umputun", s.version))
	s.router.Use(rest.Ping)
	s.router.Use(rest.RealIP)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(securityHeaders)
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// rateLimiter limits requests per client ip, address is set by rest.RealIP
func (s *Server) rateLimiter() func(http.Handler) http.Handler {
	perSecond := float64(s.rateLimit) / s.rateWindow.Seconds()
	lmt := tollbooth.NewLimiter(perSecond, &limiter.ExpirableOptions{DefaultExpirationTTL: s.rateWindow})
	lmt.SetBurst(s.rateLimit)
	lmt.SetIPLookup(limiter.IPLookup{Name: "RemoteAddr"})
	lmt.SetMessageContentType("application/json")
	lmt.SetMessage(`{"error":"too many requests, please try again later"}`)
	lmt.SetOnLimitReached(func(_ http.ResponseWriter, r *http.Request) {
		log.Printf("[WARN] rate limit reached for %s %s", r.RemoteAddr, r.URL.Path)
	})
	return tollbooth.HTTPMiddleware(lmt)
}

// securityHeaders sets response headers restricting how browsers treat api responses
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		h.Set("Cross-Origin-Resource-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /health", s.healthHandler)

	s.router.Mount("/api").Route(func(api *routegroup.Bundle) {
		if s.rateLimit > 0 {
			api.Use(s.rateLimiter())
		}
		api.HandleFunc("POST /auth/register", s.registerHandler)
		api.HandleFunc("POST /auth/login", s.loginHandler)

		// everything below requires a bearer token
		api.Group().Route(func(r *routegroup.Bundle) {
			r.Use(s.authMiddleware)
			r.HandleFunc("POST /auth/logout", s.logoutHandler)
			r.HandleFunc("GET /auth/me", s.meHandler)

			r.HandleFunc("GET /news", s.newsHandler)
			r.HandleFunc("POST /news/save", s.saveArticleHandler)
			r.HandleFunc("GET /news/saved", s.listSavedHandler)
			r.HandleFunc("GET /news/saved/status", s.savedStatusHandler)
			r.HandleFunc("DELETE /news/saved/{articleId}", s.deleteSavedHandler)
		})
	})
}

// healthHandler reports service and database state, always with 200
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, database := "healthy", "connected"
	if err := s.health.Ping(ctx); err != nil {
		log.Printf("[WARN] database ping failed: %v", err)
		status, database = "unhealthy", "disconnected"
	}

	renderJSON(w, r, http.StatusOK, map[string]any{
		"status":    status,
		"database":  database,
		"version":   s.version,
		"timestamp": time.Now().UTC(),
	})
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
