package api

import (
	"net/http"

	"agencysite/internal/assistant"
	"agencysite/internal/auth"
	"agencysite/internal/content"
	"agencysite/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(h *Handler, resolver *assistant.Resolver, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type"},
		ExposedHeaders: []string{leadCaptureHeader},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	requireJWT := func(next http.Handler) http.Handler {
		return auth.JWTMiddleware(next, h.jwtSigningKey)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.RegisterWebUserHandler)
			r.Post("/login", h.AuthLoginHandler)
			r.With(requireJWT).Get("/me", h.GetCurrentUserHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(resolver.Middleware)
			r.Post("/chat", h.ChatHandler)
			r.Get("/admin/audit", h.AuditLogHandler)
		})
		r.Post("/chat/leads", h.CaptureLeadHandler)
		r.Post("/booking", h.BookingHandler)

		r.Route("/content", func(r chi.Router) {
			r.Get("/services", h.ListContentHandler(content.TableServices))
			r.Get("/pricing-plans", h.ListContentHandler(content.TablePricingPlans))
			r.Get("/testimonials", h.ListContentHandler(content.TableTestimonials))
			r.Get("/portfolio", h.ListContentHandler(content.TablePortfolioItems))
			r.Get("/blog", h.ListContentHandler(content.TableBlogPosts))
			r.Get("/blog/{slug}", h.BlogPostHandler)
		})
	})

	return r
}
