package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"biblioteca/config"
	_ "biblioteca/docs"
	"biblioteca/internal/pkg/cache"
	"biblioteca/internal/pkg/database"
	"biblioteca/internal/pkg/logger"
	"biblioteca/internal/pkg/middleware"

	"biblioteca/internal/api/author"
	"biblioteca/internal/api/book"
	"biblioteca/internal/api/router"
	"biblioteca/internal/repository/authorrepo"
	"biblioteca/internal/repository/bookrepo"
	"biblioteca/internal/repository/loanrepo"
	"biblioteca/internal/service/authorservice"
	"biblioteca/internal/service/bookservice"
)

// @title Biblioteca API
// @version 1.0
// @description API de gestão de acervo: autores e livros.
// @BasePath /
func main() {
	// 0. CARREGAR VARIÁVEIS DE AMBIENTE (.env)
	// Sem .env seguimos com o ambiente do sistema (ex: Docker).
	if err := godotenv.Load(); err != nil {
		stdlog.Println("Aviso: arquivo .env não encontrado. Carregando configs apenas do ambiente do sistema.")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		stdlog.Fatalf("Falha ao carregar configurações: %v", err)
	}

	log := logger.NewLogger(cfg.LogLevel)
	if z, ok := log.(*logger.ZapLogger); ok {
		defer z.Sync()
	}
	log.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment, "port": cfg.Port})

	// 1. Infraestrutura

	// A. Banco de Dados (PostgreSQL)
	pool := database.DefaultPoolConfig()
	pool.MaxOpenConns = cfg.DBMaxOpenConns
	pool.MaxIdleConns = cfg.DBMaxIdleConns
	db, err := database.NewPostgresDB(cfg.DatabaseURL, pool)
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	log.Info("Conexão PostgreSQL estabelecida.", nil)

	// B. Cache (Redis), opcional
	var cacheClient cache.Client = cache.NopClient{}
	if cfg.CacheEnabled() {
		redisClient, err := cache.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			log.Fatal("Falha ao conectar ao Redis.", err)
		}
		defer redisClient.Close()
		cacheClient = redisClient
		log.Info("Conexão Redis estabelecida.", map[string]interface{}{"addr": cfg.RedisAddr})
	} else {
		log.Warn("REDIS_ADDR vazio: cache de estatísticas desativado.", nil)
	}

	// 2. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Repository -> Service -> Handler
	authorRepo := authorrepo.NewAuthorRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, log)
	bookRepo := bookrepo.NewBookRepository(db, cacheClient, cfg.DBTimeout, log)
	loanRepo := loanrepo.NewLoanRepository(db, cfg.DBTimeout, log)
	log.Debug("Repositórios inicializados.", nil)

	authorSvc := authorservice.NewService(authorRepo, log)
	bookSvc := bookservice.NewService(bookRepo, authorRepo, loanRepo, log)
	log.Debug("Serviços inicializados.", nil)

	opts := router.Options{
		AuthorHandler: author.NewHandler(authorSvc, log),
		BookHandler:   book.NewHandler(bookSvc, log),
		Logger:        log,
		RateLimit:     cfg.RateLimitMaxRequests,

		SwaggerEnabled: cfg.IsDevelopment(),
	}
	if cfg.RateLimitEnabled {
		if cfg.CacheEnabled() {
			opts.Limiter = middleware.NewRedisLimiter(cacheClient, cfg.RateLimitMaxRequests, cfg.RateLimitPeriod)
		} else {
			opts.Limiter = middleware.NewMemoryLimiter(cfg.RateLimitMaxRequests, cfg.RateLimitPeriod)
		}
	}

	// 3. Servidor
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Servidor Biblioteca ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	// 4. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
