package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/yoockh/careerly/config"
	"github.com/yoockh/careerly/internal/api/handlers"
	"github.com/yoockh/careerly/internal/api/middleware"
	"github.com/yoockh/careerly/internal/api/routes"
	"github.com/yoockh/careerly/internal/auth"
	"github.com/yoockh/careerly/internal/cache"
	"github.com/yoockh/careerly/internal/logger"
	"github.com/yoockh/careerly/internal/notify"
	"github.com/yoockh/careerly/internal/providers/llm"
	"github.com/yoockh/careerly/internal/queue"
	mongorepo "github.com/yoockh/careerly/internal/repositories/mongo"
	pgrepo "github.com/yoockh/careerly/internal/repositories/postgres"
	"github.com/yoockh/careerly/internal/services"
	"github.com/yoockh/careerly/internal/storage"
	"github.com/yoockh/careerly/internal/workers"
	"golang.org/x/sync/errgroup"
)

const generationTTL = 30 * 24 * time.Hour

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server and match-scoring workers",
	RunE:  runServe,
}

var (
	serveWorkers         int
	serveShutdownTimeout time.Duration
)

func init() {
	serveCmd.Flags().IntVar(&serveWorkers, "workers", 2, "Match-scoring consumers (0 disables; needs Redis)")
	serveCmd.Flags().DurationVar(&serveShutdownTimeout, "shutdown-timeout", 15*time.Second, "Graceful shutdown timeout")

	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	env := config.LoadEnv()
	log := logger.New(env.LogLevel)
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.InitPostgres(env.PostgresURI)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer func() { _ = config.ClosePostgres(db) }()
	log.Info("postgres connected")

	var rdb *redis.Client
	if env.RedisURL != "" {
		rdb, err = config.InitRedis(ctx, env.RedisURL)
		if err != nil {
			log.WithError(err).Warn("redis unavailable, scoring queue and notifications disabled")
			rdb = nil
		} else {
			defer rdb.Close()
			log.Info("redis connected")
		}
	}

	var history mongorepo.GenerationRepository
	if env.MongoURI != "" {
		mc, err := config.InitMongo(env.MongoURI)
		if err != nil {
			log.WithError(err).Warn("mongo unavailable, generation history disabled")
		} else {
			defer func() { _ = mc.Disconnect(context.Background()) }()
			mdb := mc.Database(env.MongoDB)
			if err := config.EnsureMongoIndexes(mdb); err != nil {
				log.WithError(err).Warn("mongo indexes not ensured")
			}
			history = mongorepo.NewGenerationRepo(mdb, generationTTL)
			log.Info("mongo connected")
		}
	}

	llmCfg := llm.Config{
		Provider:       env.LLMProvider,
		APIKey:         env.LLMAPIKey,
		Model:          env.LLMModel,
		EmbeddingModel: env.LLMEmbeddingModel,
		ProjectID:      env.VertexProjectID,
		Location:       env.VertexLocation,
	}
	provider, err := llm.New(ctx, llmCfg)
	if err != nil {
		log.WithError(err).Warn("language model not configured, AI routes will answer 500")
		provider = nil
	} else {
		defer provider.Close()
	}
	embedder, err := llm.NewEmbedder(ctx, llmCfg)
	if err != nil {
		log.WithError(err).Info("embeddings disabled, match scores use skill overlap only")
		embedder = nil
	} else {
		defer embedder.Close()
	}

	var uploader storage.Uploader
	if gcs := openGCS(ctx, env, log); gcs != nil {
		uploader = gcs
		defer gcs.Close()
	}

	admin, closeAdmin := openBootstrap(ctx, env, log)
	defer closeAdmin()

	var (
		scores queue.ScoreQueue = queue.Nop{}
		notes  notify.Notifier  = notify.Nop{}
	)
	if rdb != nil {
		scores = queue.NewRedisQueue(rdb)
		notes = notify.NewRedisNotifier(rdb)
	}

	userRepo := pgrepo.NewUserRepo(db)
	jobRepo := pgrepo.NewJobRepo(db)
	appRepo := pgrepo.NewApplicationRepo(db)
	resumeRepo := pgrepo.NewResumeRepo(db)

	userSvc := services.NewUserService(userRepo, pgrepo.NewCompanyRepo(db))
	if rdb != nil {
		userSvc = services.NewCachedUserService(userSvc, cache.NewRedisCache(rdb, "careerly:"), services.DefaultUserTypeTTL, log)
	}
	jobSvc := services.NewJobService(jobRepo, userRepo)
	appSvc := services.NewApplicationService(appRepo, jobRepo, userRepo, scores, notes, log)
	resumeSvc := services.NewResumeService(resumeRepo, userRepo, uploader)
	genSvc := services.NewGeneratorService(provider, resumeRepo, history, log)
	matchSvc := services.NewMatchService(appRepo, jobRepo, resumeRepo, embedder, notes, log)

	verifier := auth.NewVerifier(env.JWTSecret, env.JWTIssuer, env.JWTAudience)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log), cors.New(corsConfig(env.CORSOrigins)))

	routes.RegisterRoutes(r, routes.Deps{
		Verifier:     verifier,
		Users:        userSvc,
		AdminKeyHash: env.AdminKeyHash,
		Gate: middleware.GateConfig{
			Authenticator: auth.NewSupabase(env.SupabaseURL, env.SupabaseAnonKey, verifier, nil),
			Users:         userSvc,
			SecureCookies: gin.Mode() == gin.ReleaseMode,
			Logger:        log,
		},
		User:         handlers.NewUserHandler(userSvc),
		Jobs:         handlers.NewJobHandler(jobSvc),
		Applications: handlers.NewApplicationHandler(appSvc),
		Resumes:      handlers.NewResumeHandler(resumeSvc, genSvc),
		AI:           handlers.NewAIHandler(genSvc),
		Notify:       handlers.NewNotificationHandler(userSvc, rdb, env.CORSOrigins),
		Admin:        handlers.NewAdminHandler(admin),
		Pages:        handlers.NewPageHandler(env.PagesDir),
	})

	srv := &http.Server{
		Addr:              ":" + env.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithField("addr", srv.Addr).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), serveShutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	if rdb != nil && serveWorkers > 0 {
		pool := &workers.MatchWorkerPool{
			Redis:      rdb,
			Matches:    matchSvc,
			NumWorkers: serveWorkers,
			Logger:     log,
		}
		g.Go(func() error {
			if err := pool.Start(gctx); err != nil {
				return err
			}
			log.WithField("workers", serveWorkers).Info("match workers started")
			return nil
		})
	}

	return g.Wait()
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	cfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.AdminKeyHeader, "X-Request-Id"}
	cfg.ExposeHeaders = []string{"X-Request-Id"}
	return cfg
}
