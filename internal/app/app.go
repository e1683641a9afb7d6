package app

import (
	"context"
	"crypto/rand"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/stickybar/internal/config"
	"github.com/MrSnakeDoc/stickybar/internal/domain"
	"github.com/MrSnakeDoc/stickybar/internal/httpserver"
	"github.com/MrSnakeDoc/stickybar/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stickybar/internal/logger"
	"github.com/MrSnakeDoc/stickybar/internal/metrics"
	"github.com/MrSnakeDoc/stickybar/internal/redis"
	"github.com/MrSnakeDoc/stickybar/internal/scheduler"
	"github.com/MrSnakeDoc/stickybar/internal/store/memory"
	"github.com/MrSnakeDoc/stickybar/internal/store/postgres"
	redisstore "github.com/MrSnakeDoc/stickybar/internal/store/redis"
	"github.com/MrSnakeDoc/stickybar/internal/utils"
	"github.com/MrSnakeDoc/stickybar/internal/version"
)

// recordStore holds the options and selection records and, for the catalog
// posts backend, the imported posts.
type recordStore interface {
	domain.OptionsStore
	domain.SelectionStore
	scheduler.CatalogStore
	domain.PostFinder
	domain.PostLister
}

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	db          *sqlx.DB
	reloader    *scheduler.CatalogReloader
	trash       *scheduler.TrashCollector
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)
	m := metrics.New()

	a := &App{cfg: cfg, logger: loggerClient}

	store, checks := a.openRecordStore()

	var (
		posts         domain.PostFinder = store
		postList      domain.PostLister = store
		reloadTrigger chan struct{}
	)

	switch cfg.PostsBackend {
	case config.PostsPostgres:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.PostgresPingTimeout+time.Second)
		db, err := postgres.Open(ctx, postgres.Options{
			DSN:          cfg.PostgresDSN,
			MaxOpenConns: cfg.PostgresMaxOpenConns,
			MaxIdleConns: cfg.PostgresMaxIdleConns,
			PingTimeout:  cfg.PostgresPingTimeout,
		})
		cancel()
		if err != nil {
			loggerClient.Error("failed to connect to postgres", logger.Error(err))
			os.Exit(1)
		}
		loggerClient.Info("postgres initialized successfully",
			logger.String("table", cfg.PostgresTable))

		repo := postgres.NewPostRepository(db, cfg.PostgresTable)
		posts, postList = repo, repo
		checks = append(checks, deps.Check{Name: "postgres", Ping: db.PingContext})
		a.db = db

	default:
		// Create manual reload trigger channel
		reloadTrigger = make(chan struct{}, 1)

		a.reloader = scheduler.NewCatalogReloader(
			cfg.CatalogFile,
			store,
			loggerClient,
			cfg.ReloadInterval,
			reloadTrigger,
		)
		a.reloader.SetObserver(m)

		if cfg.TrashInterval > 0 {
			a.trash = scheduler.NewTrashCollector(
				store,
				loggerClient,
				cfg.TrashInterval,
				cfg.TrashRetention,
			)
		}
	}

	links := domain.NewURLLinks(cfg.PublicBaseURL, cfg.AdminBaseURL)
	resolver := domain.NewResolver(store, store, posts, links,
		domain.WithLocation(cfg.Location),
		domain.WithObserver(m),
	)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:             loggerClient,
		StartTime:          time.Now(),
		Version:            version.Version,
		Commit:             version.Commit,
		BuildDate:          version.BuildDate,
		GoVersion:          version.GoVersion,
		TimeNow:            time.Now,
		AllowedHosts:       cfg.AllowedHosts,
		AllowedCIDRS:       cfg.AllowedCIDRS,
		TrustProxy:         cfg.TrustProxy,
		SiteTitle:          cfg.SiteTitle,
		StoreBackend:       cfg.StoreBackend,
		PostsBackend:       cfg.PostsBackend,
		Resolver:           resolver,
		Options:            domain.NewOptionsEditor(store),
		Selection:          domain.NewSelectionEditor(store, cfg.Location),
		Posts:              posts,
		PostList:           postList,
		Links:              links,
		Metrics:            m,
		Checks:             checks,
		ReloadTrigger:      reloadTrigger,
		CSRFKey:            csrfKey(cfg.CSRFKey, loggerClient),
		CSRFTrustedOrigins: cfg.CSRFTrustedOrigins,
		RateLimitBurst:     cfg.RateLimitBurst,
		RateLimitRefill:    cfg.RateLimitRefill,
		RateLimitEntries:   cfg.RateLimitEntries,
	}

	a.server = httpserver.New(cfg, loggerClient, d)
	return a
}

// openRecordStore connects the backend holding the options and selection
// records. Redis is fatal when unreachable: the service refuses to start.
func (a *App) openRecordStore() (recordStore, []deps.Check) {
	if a.cfg.StoreBackend == config.StoreMemory {
		a.logger.Warn("using in-memory store, settings are lost on restart")
		return memory.NewStore(), nil
	}

	// Initialize Redis early - fail fast if unavailable
	redisClient, err := redis.New(context.Background(), redis.ConnectOptions{
		Addr:           a.cfg.RedisAddr,
		User:           a.cfg.RedisUser,
		Password:       a.cfg.RedisPassword,
		RedisDB:        a.cfg.RedisDB,
		DialTimeout:    a.cfg.RedisDT,
		ReadTimeout:    a.cfg.RedisRT,
		WriteTimeout:   a.cfg.RedisWT,
		PoolSize:       a.cfg.RedisPoolSize,
		ConnectTimeout: a.cfg.RedisConnectTimeout,
		RetryInterval:  a.cfg.RedisRetryInterval,
		MaxWait:        a.cfg.RedisMaxWait,
		PingTimeout:    a.cfg.RedisPingTimeout,
		WarnThreshold:  a.cfg.RedisWarnThreshold,
	}, a.logger)
	if err != nil {
		a.logger.Error("failed to connect to redis", logger.Error(err))
		os.Exit(1)
	}
	a.logger.Info("redis initialized successfully")
	a.redisClient = redisClient

	store := redisstore.NewStore(redisClient)
	return store, []deps.Check{{Name: "redis", Ping: store.Ping}}
}

// csrfKey returns the configured key, or a random one. A random key only
// lives as long as the process.
func csrfKey(configured string, log logger.Logger) []byte {
	if configured != "" {
		return []byte(configured)
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatal("failed to generate csrf key", logger.Error(err))
	}
	log.Debug("no CSRF_KEY configured, using a random key")
	return key
}

func (a *App) Run() error {
	a.logger.Info("starting stickybar",
		logger.String("version", version.Version),
		logger.String("commit", version.Commit),
		logger.String("built", version.BuildDate),
		logger.String("go", version.GoVersion),
		logger.String("listen", a.cfg.ListenPort),
		logger.String("store", a.cfg.StoreBackend),
		logger.String("posts", a.cfg.PostsBackend))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start catalog reloader (imports posts and starts periodic refresh)
	if a.reloader != nil {
		if err := a.reloader.Start(ctx); err != nil {
			return fmt.Errorf("failed to start catalog reloader: %w", err)
		}
		a.logger.Info("catalog reloader started",
			logger.String("file", a.cfg.CatalogFile),
			logger.Duration("interval", a.cfg.ReloadInterval))
	}

	// Start trash collector
	if a.trash != nil {
		a.trash.Start(ctx)
		a.logger.Info("trash collector started",
			logger.Duration("interval", a.cfg.TrashInterval))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	if a.reloader != nil {
		a.reloader.Stop()
	}
	if a.trash != nil {
		a.trash.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		utils.CloseLogged(a.redisClient, "redis", a.logger)
	}
	if a.db != nil {
		utils.CloseLogged(a.db, "postgres", a.logger)
	}

	a.logger.Info("stickybar stopped cleanly")
	_ = a.logger.Sync()
	return nil
}
