// POST /api/auth/signup          # Регистрация (публичный)
// POST /api/auth/login           # Логин (публичный)
// POST /api/auth/reset-password  # Сброс пароля (публичный)
// POST /api/cases                # Отчёт о случае (auth)
// GET  /api/cases                # Список отчётов (auth)
// POST /api/water-tests          # Анализ воды (auth)
// GET  /api/water-tests          # Список анализов (auth)
// GET  /api/alerts               # Активные объявления (auth)
// POST /api/alerts               # Создать объявление (auth)
// POST /api/upload-image         # Загрузка фото (auth)
// GET  /api/health               # Проверка (публичный)
// GET  /uploads/{name}           # Загруженные файлы
// GET  /metrics                  # Prometheus

package api

import (
	"context"
	"net/http"

	"healthwatch/internal/app/server/api/http/alert"
	caseAPI "healthwatch/internal/app/server/api/http/casereport"
	healthAPI "healthwatch/internal/app/server/api/http/health"
	"healthwatch/internal/app/server/api/http/httperr"
	"healthwatch/internal/app/server/api/http/middleware"
	"healthwatch/internal/app/server/api/http/middleware/auth"
	"healthwatch/internal/app/server/api/http/middleware/logger"
	"healthwatch/internal/app/server/api/http/middleware/metrics"
	"healthwatch/internal/app/server/api/http/middleware/ratelimit"
	"healthwatch/internal/app/server/api/http/middleware/recoverer"
	uploadAPI "healthwatch/internal/app/server/api/http/upload"
	userAPI "healthwatch/internal/app/server/api/http/user"
	waterAPI "healthwatch/internal/app/server/api/http/watertest"
	"healthwatch/internal/app/server/config"
	alertDomain "healthwatch/internal/domain/alert"
	"healthwatch/internal/domain/casereport"
	"healthwatch/internal/domain/record"
	"healthwatch/internal/domain/session"
	"healthwatch/internal/domain/user"
	"healthwatch/internal/domain/watertest"
	"healthwatch/internal/infrastructure/blob"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/exp/slog"
)

// Deps: хранилища, за которыми стоит API. Limiter и DB могут быть nil.
type Deps struct {
	Users      user.Repository
	Cases      casereport.Repository
	WaterTests watertest.Repository
	Alerts     alertDomain.Repository
	Blobs      blob.Store
	Limiter    ratelimit.Limiter
	DB         healthAPI.Pinger
}

type Handlers struct {
	Health    *healthAPI.Handler
	User      *userAPI.Handler
	Case      *caseAPI.Handler
	WaterTest *waterAPI.Handler
	Alert     *alert.Handler
	Upload    *uploadAPI.Handler
}

// New создает *chi.Mux с ВСЕМИ операциями через huma.Register
func New(cfg *config.Config, deps Deps, log *slog.Logger) *chi.Mux {
	httperr.Install()

	mux := chi.NewMux()
	if cfg.Server.TrustProxy {
		mux.Use(chimw.RealIP)
	}
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", logger.HeaderRequestID},
		ExposedHeaders: []string{"Retry-After", logger.HeaderRequestID},
		MaxAge:         300,
	}))
	mux.NotFound(httperr.Handler(http.StatusNotFound, httperr.MsgRouteNotFound))
	mux.MethodNotAllowed(httperr.Handler(http.StatusMethodNotAllowed, httperr.MsgMethodNotAllowed))

	m := metrics.New()
	mux.Handle("/metrics", m.Handler())
	mux.Method(http.MethodGet, cfg.Upload.URLPath+"/*", blob.Handler(cfg.Upload.URLPath, deps.Blobs, log))

	humaConfig := huma.DefaultConfig("Health Surveillance API", "1.0.0")
	// без $schema в ответах: клиенты ждут ровно конверт
	humaConfig.CreateHooks = nil
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
	}

	API := humachi.New(mux, humaConfig)

	h := handlers(cfg, deps, m, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Case.SetupRoutes(API)
	h.WaterTest.SetupRoutes(API)
	h.Alert.SetupRoutes(API)
	h.Upload.SetupRoutes(API)

	return mux
}

func handlers(cfg *config.Config, deps Deps, m *metrics.Metrics, log *slog.Logger) *Handlers {
	sessionService := session.NewService(cfg.Auth.Secret, cfg.Auth.TokenTTL, log)
	authMW := auth.New(sessionService, log)
	loggerMW := logger.New(log)
	recoverMW := recoverer.New(log)
	rateLimit := ratelimit.New(deps.Limiter, log, m.RateLimitHit)
	middlewares := middleware.NewContainer()

	base := func() *middleware.Container {
		return middlewares.Add(m.Middleware(), loggerMW.Middleware(), recoverMW)
	}
	protected := func() huma.Middlewares {
		return base().Add(authMW.Middleware()).GetAllAndClear()
	}

	healthHandler := healthAPI.NewHandler(deps.DB, log, base().GetAllAndClear())

	userService := user.NewService(deps.Users, user.NewPasswordValidator(), log, cfg.Auth.BcryptCost)
	userHandler := userAPI.NewHandler(userService, sessionService, log, userAPI.Middlewares{
		Signup: base().Add(rateLimit.Middleware("signup", cfg.RateLimit.Signup, cfg.RateLimit.Window)).GetAllAndClear(),
		Login:  base().Add(rateLimit.Middleware("login", cfg.RateLimit.Login, cfg.RateLimit.Window)).GetAllAndClear(),
		Reset:  base().Add(rateLimit.Middleware("reset-password", cfg.RateLimit.Login, cfg.RateLimit.Window)).GetAllAndClear(),
	})

	caseService := counted[casereport.Input, casereport.Report](casereport.NewService(deps.Cases, log), "case_report", m)
	caseHandler := caseAPI.NewHandler(caseService, log, protected())

	waterService := counted[watertest.Input, watertest.Test](watertest.NewService(deps.WaterTests, log), "water_test", m)
	waterHandler := waterAPI.NewHandler(waterService, log, protected())

	alertService := counted[alertDomain.Input, alertDomain.Alert](alertDomain.NewService(deps.Alerts, log), "alert", m)
	alertHandler := alert.NewHandler(alertService, log, protected())

	uploadHandler := uploadAPI.NewHandler(deps.Blobs, cfg.Upload.MaxBytes, cfg.Upload.URLPath, log, protected())

	return &Handlers{
		Health:    healthHandler,
		User:      userHandler,
		Case:      caseHandler,
		WaterTest: waterHandler,
		Alert:     alertHandler,
		Upload:    uploadHandler,
	}
}

// countingService считает принятые записи в метриках.
type countingService[In, Out any] struct {
	record.Servicer[In, Out]
	kind    string
	metrics *metrics.Metrics
}

func counted[In, Out any](s record.Servicer[In, Out], kind string, m *metrics.Metrics) *countingService[In, Out] {
	return &countingService[In, Out]{Servicer: s, kind: kind, metrics: m}
}

func (c *countingService[In, Out]) Submit(ctx context.Context, reporterID string, in In) (Out, error) {
	out, err := c.Servicer.Submit(ctx, reporterID, in)
	if err == nil {
		c.metrics.RecordSubmitted(c.kind)
	}
	return out, err
}
