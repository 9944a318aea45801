package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"legal-llm/internal/config"
	"legal-llm/internal/db"
	"legal-llm/internal/faq"
	"legal-llm/internal/guard"
	apihttp "legal-llm/internal/http"
	"legal-llm/internal/llm"
	"legal-llm/internal/repository"
	"legal-llm/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	// Sin LLM_API_KEY el parseo falla y el proceso no arranca.
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Almacenamiento: Postgres si hay DATABASE_URL; Redis como alternativa
	// para historial; memoria como último recurso.
	var (
		sessionRepo repository.SessionRepository
		messageRepo repository.MessageRepository
	)
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		sessionRepo = repository.NewPgSessionRepository(pool)
		messageRepo = repository.NewPgMessageRepository(pool)
	} else {
		sessionRepo = repository.NewMemorySessionRepository()
		messageRepo = repository.NewMemoryMessageRepository()
		logger.Info("no DATABASE_URL, using in-memory session storage")
	}

	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else if cfg.DatabaseURL == "" {
			messageRepo = repository.NewRedisMessageRepository(redisClient, 24*time.Hour)
			logger.Info("using redis-backed session history")
		}
		cancel()
	}

	llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, llm.Options{
		Model:       cfg.LLMModel,
		Temperature: cfg.LLMTemperature,
		MaxTokens:   cfg.LLMMaxTokens,
	}, zap.NewStdLog(logger))

	historySvc := service.NewBasicHistoryService(messageRepo, cfg.HistoryLimit)
	chatSvc := service.NewChatService(
		llmClient,
		sessionRepo,
		messageRepo,
		faq.NewStore(),
		guard.NewLadder(),
		historySvc,
	)

	chatHandler := apihttp.NewChatHandler(logger, chatSvc)
	router := apihttp.NewRouter(logger, chatHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
