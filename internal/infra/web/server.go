package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/ports/adapter"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/infra/metrics"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/usecase"
)

// TurnLimiter throttles chat turns per user. Optional; a nil limiter
// disables throttling.
type TurnLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type Server struct {
	authUC    usecase.AuthUseCase
	creditUC  usecase.CreditLedgerUseCase
	sessionUC usecase.SessionUseCase
	chatUC    usecase.ChatUseCase
	statsUC   usecase.AnalyticsUseCase
	contactUC usecase.ContactUseCase
	speech    adapter.SpeechSynthesizer

	tokens        *AuthManager
	limiter       TurnLimiter
	ratePerMinute int

	log *zerolog.Logger
}

func NewServer(
	authUC usecase.AuthUseCase,
	creditUC usecase.CreditLedgerUseCase,
	sessionUC usecase.SessionUseCase,
	chatUC usecase.ChatUseCase,
	statsUC usecase.AnalyticsUseCase,
	contactUC usecase.ContactUseCase,
	speech adapter.SpeechSynthesizer,
	tokens *AuthManager,
	limiter TurnLimiter,
	ratePerMinute int,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		authUC:        authUC,
		creditUC:      creditUC,
		sessionUC:     sessionUC,
		chatUC:        chatUC,
		statsUC:       statsUC,
		contactUC:     contactUC,
		speech:        speech,
		tokens:        tokens,
		limiter:       limiter,
		ratePerMinute: ratePerMinute,
		log:           logger,
	}
}

// Router builds the full route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.metricsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Post("/register", s.handleRegister())
		api.Post("/login", s.handleLogin())
		api.Post("/contact", s.handleContact())
		api.Post("/text-to-speech", s.handleTextToSpeech())

		api.Group(func(authed chi.Router) {
			authed.Use(s.authMiddleware)

			authed.Get("/credits", s.handleGetCredits())
			authed.Post("/credits/use", s.handleUseCredit())
			authed.Post("/credits/buy", s.handleBuyCredits())
			authed.Post("/pro/upgrade", s.handleUpgrade())

			authed.Post("/session/create", s.handleSessionCreate())
			authed.Post("/session/{sessionID}/end", s.handleSessionEnd())
			authed.Post("/get-response", s.handleChatTurn())

			authed.Get("/dashboard", s.handleDashboard())
			authed.Get("/mood-history", s.handleMoodHistory())

			authed.Group(func(pro chi.Router) {
				pro.Use(s.proMiddleware)
				pro.Get("/pro/sessions", s.handleSessionList())
				pro.Get("/pro/session/{sessionID}", s.handleSessionMessages())
			})
		})
	})

	return r
}

func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		metrics.ObserveHTTPRequest(route, ww.Status(), time.Since(start))
	})
}
