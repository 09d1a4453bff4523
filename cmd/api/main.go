package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cardlink/synergy-crm/internal/config"
	"github.com/cardlink/synergy-crm/internal/facade"
	"github.com/cardlink/synergy-crm/internal/infra/ai"
	"github.com/cardlink/synergy-crm/internal/infra/database"
	"github.com/cardlink/synergy-crm/internal/infra/http/handlers"
	"github.com/cardlink/synergy-crm/internal/infra/http/middleware"
	"github.com/cardlink/synergy-crm/internal/infra/mail"
	"github.com/cardlink/synergy-crm/internal/infra/queue"
	"github.com/cardlink/synergy-crm/internal/infra/storage"
	"github.com/cardlink/synergy-crm/internal/infra/worker"
	"github.com/cardlink/synergy-crm/internal/usecase"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal(err)
	}

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitUser, cfg.RabbitPass, cfg.RabbitHost, cfg.RabbitPort)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositories
	contactRepo := database.NewContactRepository(db)
	emailRepo := database.NewEmailRepository(db)
	noteRepo := database.NewNoteRepository(db)

	// 2. External services
	aiClient := ai.NewClient(cfg.OpenAIKey, cfg.OpenAIBaseURL)
	mailSender := mail.NewEmailSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From)
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

	cardStorage, err := storage.NewCardStorage(ctx, storage.Config{
		Bucket: cfg.CardBucket,
		Prefix: cfg.CardPrefix,
		Region: cfg.AWSRegion,
	})
	if err != nil {
		log.Fatal(err)
	}

	// 3. Use cases
	createContactUC := usecase.NewCreateContactUseCase(contactRepo)
	deleteContactUC := usecase.NewDeleteContactUseCase(contactRepo, emailRepo)
	createEmailUC := usecase.NewCreateEmailUseCase(emailRepo, contactRepo)
	sendEmailUC := usecase.NewSendEmailUseCase(emailRepo, contactRepo, mailSender)
	generateEmailUC := usecase.NewGenerateEmailUseCase(contactRepo, noteRepo, aiClient, cfg.SenderName)

	// 4. Façade (warm the mirror before serving)
	data := facade.NewDataFacade(contactRepo, emailRepo, createContactUC, deleteContactUC, createEmailUC, sendEmailUC, generateEmailUC)
	if err := data.Refresh(ctx); err != nil {
		log.Fatal(err)
	}

	// 5. Background workers
	scanWorker := queue.NewScanWorker(rabbitMQ.Ch, aiClient, cardStorage, createContactUC)
	go scanWorker.Start(queue.QueueName)

	if cfg.DispatchEnabled {
		dispatcher := worker.NewDispatcher(emailRepo, mailSender, cfg.DispatchInterval)
		go dispatcher.Start(ctx)
	}

	// 6. Handlers
	contactHandler := handlers.NewContactHandler(data)
	emailHandler := handlers.NewEmailHandler(data)
	generateHandler := handlers.NewGenerateHandler(data)
	scanHandler := handlers.NewScanHandler(cardStorage, producer)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 7. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/contacts", func(r chi.Router) {
		r.Get("/", contactHandler.List)
		r.Post("/", contactHandler.Create)
		r.Get("/{id}", contactHandler.Get)
		r.Put("/{id}", contactHandler.Update)
		r.Delete("/{id}", contactHandler.Delete)

		r.Get("/{id}/emails", emailHandler.ListForContact)
		r.Post("/{id}/emails", emailHandler.Create)
		r.Post("/{id}/generate", generateHandler.Generate)
		r.Post("/{id}/send", emailHandler.SendNow)
		r.Post("/{id}/schedule", emailHandler.Schedule)
	})

	r.Route("/emails", func(r chi.Router) {
		r.Get("/", emailHandler.List)
		r.Put("/{id}", emailHandler.Update)
		r.Delete("/{id}", emailHandler.Delete)
	})

	r.Post("/scans", scanHandler.Scan)

	port := ":" + cfg.Port
	log.Printf("🔥 Synergy CRM API listening on %s", port)
	http.ListenAndServe(port, r)
}
