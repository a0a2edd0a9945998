package transporthttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/MrKriegler/motor-rating/internal/http/handlers"
	"github.com/MrKriegler/motor-rating/internal/middleware"
)

// Deps bundles everything the router needs: middleware settings plus the
// feature handlers that implement handlers.Mountable.
type Deps struct {
	APIKey         string
	AllowedOrigins []string
	RateLimitRPM   int
	RequestTimeout time.Duration

	// Health mounts at the root so probes bypass the /api/v1 prefix.
	Health handlers.Mountable
	Mounts []handlers.Mountable
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(d.RequestTimeout))

	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(d.AllowedOrigins))
	r.Use(middleware.LimitRequestBody(middleware.MaxBodySize))

	rl := middleware.NewRateLimiter(d.RateLimitRPM, time.Minute)
	r.Use(rl.Middleware)
	r.Use(middleware.SimpleAPIKey(d.APIKey))
	r.Use(middleware.SetJSONContentType)

	if d.Health != nil {
		d.Health.Mount(r)
	}

	// Mount each feature's routes under the versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		for _, m := range d.Mounts {
			m.Mount(api)
		}
	})

	return r
}
