package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/xavierca1/ligue-whatsapp/internal/config"
	"github.com/xavierca1/ligue-whatsapp/internal/infra/cache"
	"github.com/xavierca1/ligue-whatsapp/internal/infra/database"
	"github.com/xavierca1/ligue-whatsapp/internal/infra/events"
	"github.com/xavierca1/ligue-whatsapp/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-whatsapp/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-whatsapp/internal/infra/integration/whatsapp"
	"github.com/xavierca1/ligue-whatsapp/internal/infra/mail"
	"github.com/xavierca1/ligue-whatsapp/internal/infra/queue"
	"github.com/xavierca1/ligue-whatsapp/internal/infra/worker"
	"github.com/xavierca1/ligue-whatsapp/internal/ratelimit"
	"github.com/xavierca1/ligue-whatsapp/internal/usecase"
	"github.com/xavierca1/ligue-whatsapp/internal/validation"
)

func main() {
	godotenv.Load()

	ctx := context.Background()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("❌ Falha ao conectar no Postgres: %v", err)
	}
	defer db.Close()

	// 1. Cache (Redis em produção, memória como fallback de dev)
	var cacheLayer cache.Cache
	var redisClient *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		cacheLayer = cache.NewRedis(redisClient)
	} else {
		log.Printf("⚠️ REDIS_ADDR vazio, usando cache em memória")
		memory := cache.NewMemory()
		memory.StartJanitor(ctx)
		cacheLayer = memory
	}

	// 2. RabbitMQ (opcional: sem fila o dispatch diferido vira envio direto)
	var rabbitMQ *queue.RabbitMQ
	var producer *queue.Producer
	if host := os.Getenv("RABBITMQ_HOST"); host != "" {
		rabbitMQ, err = queue.NewRabbitMQ(
			os.Getenv("RABBITMQ_USER"), os.Getenv("RABBITMQ_PASS"),
			host, os.Getenv("RABBITMQ_PORT"),
		)
		if err != nil {
			log.Fatalf("❌ Falha ao conectar no RabbitMQ: %v", err)
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()

		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	} else {
		log.Printf("⚠️ RABBITMQ_HOST vazio, envio diferido será síncrono")
	}

	// 3. Repositórios
	optionRepo := database.NewOptionRepository(db)
	logRepo := database.NewMessageLogRepository(db)

	// 4. Sinks de evento: log sempre, fila e email quando configurados
	eventSink := events.NewMulti(events.NewLogSink())
	if producer != nil {
		eventSink.Add(producer)
	}

	validator := validation.New()
	store := config.NewStore(optionRepo, cacheLayer, validator, eventSink)

	if mailHost := os.Getenv("MAIL_HOST"); mailHost != "" {
		mailPort, _ := strconv.Atoi(os.Getenv("MAIL_PORT"))
		if mailPort == 0 {
			mailPort = 587
		}
		sender := mail.NewEmailSender(
			mailHost, mailPort,
			os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
			os.Getenv("MAIL_FROM"),
		)
		eventSink.Add(mail.NewErrorNotifier(sender, store))
	}

	// 5. Gateway de envio
	clientOpts := []whatsapp.Option{whatsapp.WithPacing(10, 20)}
	if baseURL := os.Getenv("WHATSAPP_API_URL"); baseURL != "" {
		clientOpts = append(clientOpts, whatsapp.WithBaseURL(baseURL))
	}
	apiClient := whatsapp.NewClient(clientOpts...)
	limiter := ratelimit.New(cacheLayer)

	gateway := usecase.NewMessageGateway(
		store, validator, limiter, apiClient, logRepo, eventSink,
		os.Getenv("APP_URL"), os.Getenv("DISPATCH_TOKEN_SECRET"),
	)

	// 6. Workers: consumidor da fila de envios diferidos e retenção de logs
	if rabbitMQ != nil {
		dispatchWorker := queue.NewWorker(rabbitMQ.Ch, gateway)
		go dispatchWorker.Start(queue.QueueName)
	}

	retention := worker.NewLogRetentionWorker(db)
	go retention.Start(ctx)

	// 7. Handlers
	messageHandler := handlers.NewMessageHandler(gateway)
	urlHandler := handlers.NewURLHandler(gateway)
	settingsHandler := handlers.NewSettingsHandler(store)
	statusHandler := handlers.NewStatusHandler(store, apiClient)
	logsHandler := handlers.NewLogsHandler(logRepo)
	healthHandler := newHealthHandler(db, rabbitMQ, redisClient)

	var dispatchQueue handlers.DispatchQueueInterface
	if producer != nil {
		dispatchQueue = producer
	}
	dispatchHandler := handlers.NewDispatchHandler(gateway, dispatchQueue)

	// 8. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/wa/dispatch", dispatchHandler.Handle)

	r.Route("/api", func(r chi.Router) {
		r.Post("/messages/{type}", messageHandler.SendHandler)
		r.Get("/templates/{name}", messageHandler.TemplateHandler)
		r.Get("/whatsapp-url", urlHandler.Handle)
		r.Get("/whatsapp/status", statusHandler.Handle)
		r.Get("/logs", logsHandler.Handle)

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", settingsHandler.GetHandler)
			r.Put("/", settingsHandler.PutHandler)
			r.Patch("/", settingsHandler.PatchHandler)
			r.Get("/export", settingsHandler.ExportHandler)
			r.Post("/import", settingsHandler.ImportHandler)
			r.Post("/migrate", settingsHandler.MigrateHandler)
			r.Post("/clear-cache", settingsHandler.ClearCacheHandler)
			r.Post("/reset", settingsHandler.ResetHandler)
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🔥 Server Ligue WhatsApp rodando na porta :%s", port)
	http.ListenAndServe(":"+port, r)
}
