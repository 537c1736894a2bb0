package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	mem "provider-dashboard/internal/adapters/storage/memory"
	"provider-dashboard/internal/domain/bookings"
	"provider-dashboard/internal/domain/catalog"
	"provider-dashboard/internal/domain/providers"
	"provider-dashboard/internal/middleware"
	"provider-dashboard/internal/ports/auth"
	"provider-dashboard/internal/ports/marketplace"
)

type Options struct {
	Verifier auth.SessionVerifier // validación local de la credencial
	API      marketplace.API      // cliente hacia el marketplace
	Logger   *zap.Logger          // opcional; nil => nop
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.Verifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Estado por provider, todo en memoria: el dueño de los datos durables
	// es el marketplace.
	stores := mem.NewBookingStores()
	cache := mem.NewSessionCache()

	// Services por módulo
	gateSvc := providers.NewService(opts.API, cache)
	bookingsSvc := bookings.NewService(opts.API, stores)
	catalogSvc := catalog.NewService(opts.API)

	// Todo lo protegido pasa por el gate: sesión válida + provider approved.
	r.Group(func(pr chi.Router) {
		pr.Use(providers.Require(gateSvc, log))

		providers.RegisterRoutes(pr)
		bookings.RegisterRoutes(pr, bookingsSvc)
		catalog.RegisterRoutes(pr, catalogSvc)
	})

	return r
}
