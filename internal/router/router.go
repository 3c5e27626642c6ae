package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "myvet/docs"
	lockadapter "myvet/internal/adapters/lock"
	mem "myvet/internal/adapters/storage/memory"
	pg "myvet/internal/adapters/storage/postgres"
	"myvet/internal/backend"
	"myvet/internal/middleware"
	"myvet/internal/platform/logger"
	"myvet/internal/ports/auth"
	"myvet/internal/ports/lock"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, se usa tal cual y DB/Locker/Slots se ignoran.
	Service *backend.Service

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// nil => lock en proceso.
	Locker lock.Locker

	Logger      logger.Logger
	RateLimiter *middleware.IPRateLimiter // nil => sin límite
	Slots       backend.SlotConfig
}

// NewService arma el backend con el storage y el lock que indiquen las opciones.
func NewService(opts Options) *backend.Service {
	repos := mem.NewRepositories()
	if opts.DB != nil {
		repos = pg.NewRepositories(opts.DB)
	}
	locker := opts.Locker
	if locker == nil {
		locker = lockadapter.NewMemory()
	}
	return backend.NewService(backend.Options{
		Repos:  repos,
		Locker: locker,
		Logger: opts.Logger,
		Slots:  opts.Slots,
	})
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	svc := opts.Service
	if svc == nil {
		svc = NewService(opts)
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(middleware.RequestLog(log))
	if opts.RateLimiter != nil {
		r.Use(middleware.RateLimit(opts.RateLimiter))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/v1", func(v chi.Router) {
		v.Use(middleware.AuthContext(opts.AuthVerifier))
		backend.RegisterRoutes(v, svc)
	})

	return r
}
