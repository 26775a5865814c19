package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/sports-league/internal/config"
	"github.com/riskibarqy/sports-league/internal/domain/league"
	"github.com/riskibarqy/sports-league/internal/domain/match"
	"github.com/riskibarqy/sports-league/internal/domain/notification"
	"github.com/riskibarqy/sports-league/internal/domain/playersport"
	"github.com/riskibarqy/sports-league/internal/domain/registration"
	"github.com/riskibarqy/sports-league/internal/domain/roster"
	"github.com/riskibarqy/sports-league/internal/domain/team"
	"github.com/riskibarqy/sports-league/internal/domain/tournament"
	"github.com/riskibarqy/sports-league/internal/domain/user"
	"github.com/riskibarqy/sports-league/internal/domain/venue"
	"github.com/riskibarqy/sports-league/internal/infrastructure/auth"
	cacherepo "github.com/riskibarqy/sports-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/sports-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/sports-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/sports-league/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/sports-league/internal/platform/cache"
	idgen "github.com/riskibarqy/sports-league/internal/platform/id"
	"github.com/riskibarqy/sports-league/internal/platform/logging"
	"github.com/riskibarqy/sports-league/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

// App holds the wired HTTP server and the services background jobs need.
type App struct {
	Server      *http.Server
	Seed        *usecase.SeedService
	Tournaments *usecase.TournamentService

	db *sqlx.DB
}

type repositories struct {
	users         user.Repository
	sports        playersport.Repository
	teams         team.Repository
	rosters       roster.Repository
	matches       match.Repository
	tournaments   tournament.Repository
	venues        venue.Repository
	registrations registration.Repository
	notifications notification.Store
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	a := &App{}
	repos, err := a.openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.venues = cacherepo.NewVenueRepository(repos.venues, store)
		repos.tournaments = cacherepo.NewTournamentRepository(repos.tournaments, store)
		logger.Info("repository cache enabled", "ttl", cfg.CacheTTL.String())
	}

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("build token manager: %w", err)
	}
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	ids := idgen.NewUUIDGenerator()
	rules := league.DefaultRules()

	notificationSvc := usecase.NewNotificationService(repos.notifications, ids, logger)
	authSvc := usecase.NewAuthService(repos.users, hasher, tokens, ids, cfg.PhoneDefaultRegion, logger)
	userSvc := usecase.NewUserService(repos.users, repos.sports, hasher, rules, ids, cfg.PhoneDefaultRegion, logger)
	teamSvc := usecase.NewTeamService(repos.teams, repos.rosters, repos.users, repos.sports, notificationSvc, rules, ids, logger)
	matchSvc := usecase.NewMatchService(repos.matches, repos.teams, repos.tournaments, repos.venues, rules, ids, logger)
	tournamentSvc := usecase.NewTournamentService(repos.tournaments, ids, logger)
	venueSvc := usecase.NewVenueService(repos.venues, ids, logger)
	portalSvc := usecase.NewPortalService(
		repos.users,
		repos.sports,
		repos.teams,
		repos.rosters,
		repos.matches,
		repos.tournaments,
		repos.registrations,
		notificationSvc,
		ids,
		cfg.PhoneDefaultRegion,
		logger,
	)
	dashboardSvc := usecase.NewDashboardService(repos.users, repos.teams, repos.matches, repos.tournaments)

	handler := httpapi.NewHandler(
		authSvc,
		userSvc,
		teamSvc,
		matchSvc,
		tournamentSvc,
		venueSvc,
		portalSvc,
		notificationSvc,
		dashboardSvc,
		httpapi.ServiceInfo{Name: cfg.ServiceName, Version: cfg.ServiceVersion},
		logger,
	)
	router := httpapi.NewRouter(handler, authSvc, logger, httpapi.RouterConfig{
		SwaggerEnabled:       cfg.SwaggerEnabled,
		CORSAllowedOrigins:   cfg.CORSAllowedOrigins,
		ExposeInternalErrors: cfg.ExposeInternalErrors(),
		RateLimiter:          httpapi.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
	})

	if cfg.HTTPAddr == "" {
		_ = a.Close()
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	a.Seed = usecase.NewSeedService(repos.users, hasher, ids, logger)
	a.Tournaments = tournamentSvc

	return a, nil
}

func (a *App) openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	now := time.Now().UTC()

	if cfg.StorageDriver == config.StorageMemory {
		store := memory.NewSeededStore(now)
		logger.Warn("using in-memory storage; data is lost on restart")
		return repositories{
			users:         memory.NewUserRepository(store),
			sports:        memory.NewPlayerSportRepository(store),
			teams:         memory.NewTeamRepository(store),
			rosters:       memory.NewRosterRepository(store),
			matches:       memory.NewMatchRepository(store),
			tournaments:   memory.NewTournamentRepository(store),
			venues:        memory.NewVenueRepository(store),
			registrations: memory.NewRegistrationRepository(store),
			notifications: memory.NewNotificationStore(store),
		}, nil
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return repositories{}, err
	}
	a.db = db

	if err := postgres.BootstrapSeed(ctx, db, now); err != nil {
		_ = db.Close()
		return repositories{}, fmt.Errorf("bootstrap seed data: %w", err)
	}
	logger.Info("postgres storage ready", "db_name", dbNameFromURL(cfg.DBURL))

	return repositories{
		users:         postgres.NewUserRepository(db),
		sports:        postgres.NewPlayerSportRepository(db),
		teams:         postgres.NewTeamRepository(db),
		rosters:       postgres.NewRosterRepository(db),
		matches:       postgres.NewMatchRepository(db),
		tournaments:   postgres.NewTournamentRepository(db),
		venues:        postgres.NewVenueRepository(db),
		registrations: postgres.NewRegistrationRepository(db),
		notifications: postgres.NewNotificationStore(db),
	}, nil
}

func openDatabase(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
