package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/eventpass/internal/passes/media"
	"github.com/aussiebroadwan/eventpass/internal/passes/metrics"
	"github.com/aussiebroadwan/eventpass/internal/passes/service"
	"github.com/aussiebroadwan/eventpass/internal/passes/store"
	"github.com/aussiebroadwan/eventpass/pkg/httpx"
	"github.com/aussiebroadwan/eventpass/pkg/jwtx"
	"github.com/aussiebroadwan/eventpass/pkg/slogx"

	_ "github.com/aussiebroadwan/eventpass/api/passes" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store           store.Store
	UserService     *service.UserService
	EventService    *service.EventService
	PassService     *service.PassService
	DispatchService *service.DispatchService
	Media           media.Store // Optional: GET /media/{key} is only served when set
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		metrics.Middleware,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerEvents()
	r.registerPasses()
	r.registerDispatch()
	r.registerMedia()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Event Pass Service API
//	@version		0.1.0
//	@description	Event ticketing service: users register, organizers create events with Gold, Silver and Platinum pass quotas, attendees are issued passes.
//	@description
//	@description				Passes are rendered as PNG cards with a QR code and can be delivered over WhatsApp.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/eventpass
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:3000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps h with bearer authentication and a per-user rate limit.
func (r *Router) secured(h http.Handler, cfg httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(cfg),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	// POST /users/register - strict rate limit by IP (public signup endpoint)
	r.Mux.Handle("POST /users/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /users/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.StandardLimit),
		),
	)
}

func (r *Router) registerEvents() {
	h := &EventsHandler{EventService: r.EventService}

	// Reads are public
	r.Mux.Handle("GET /events",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.StandardLimit),
		),
	)
	r.Mux.Handle("GET /events/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.StandardLimit),
		),
	)

	// Writes are scoped to the organizer
	r.Mux.Handle("POST /events", r.secured(http.HandlerFunc(h.HandleCreate), httpx.StandardLimit))
	r.Mux.Handle("PUT /events/{id}", r.secured(http.HandlerFunc(h.HandleUpdate), httpx.StandardLimit))
	r.Mux.Handle("DELETE /events/{id}", r.secured(http.HandlerFunc(h.HandleDelete), httpx.StandardLimit))
}

func (r *Router) registerPasses() {
	h := &PassesHandler{PassService: r.PassService, EventService: r.EventService, UserService: r.UserService}

	r.Mux.Handle("POST /passes", r.secured(http.HandlerFunc(h.HandleCreate), httpx.StandardLimit))
	r.Mux.Handle("GET /passes", r.secured(http.HandlerFunc(h.HandleList), httpx.StandardLimit))
	r.Mux.Handle("PUT /passes/{id}/status", r.secured(http.HandlerFunc(h.HandleUpdateStatus), httpx.StandardLimit))

	// Rendering is CPU bound, keep it tighter
	r.Mux.Handle("GET /passes/{id}/image", r.secured(http.HandlerFunc(h.HandleImage), httpx.StrictLimit))
}

func (r *Router) registerDispatch() {
	h := &DispatchHandler{DispatchService: r.DispatchService}

	// Outbound messages cost money, strict limits on both
	r.Mux.Handle("POST /passes/{id}/send", r.secured(http.HandlerFunc(h.HandleSendPass), httpx.StrictLimit))
	r.Mux.Handle("POST /events/{id}/passes/send", r.secured(http.HandlerFunc(h.HandleSendEvent), httpx.StrictLimit))
}

func (r *Router) registerMedia() {
	if r.Media == nil {
		return
	}

	// GET /media/{key} - fetched by the messaging provider, public with a high limit
	r.Mux.Handle("GET /media/{key}",
		httpx.Chain(MediaHandler(r.Media),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - public limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.Media),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /metrics", metrics.Handler())
}
