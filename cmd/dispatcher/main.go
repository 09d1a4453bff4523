// One-shot dispatch pass for cron-style scheduling. Each invocation scans
// for due scheduled emails, attempts delivery, and exits. Safe to run
// while the API's in-process dispatcher is active: record claims are
// conditional updates, so overlapping passes never double-send.
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/cardlink/synergy-crm/internal/config"
	"github.com/cardlink/synergy-crm/internal/infra/database"
	"github.com/cardlink/synergy-crm/internal/infra/mail"
	"github.com/cardlink/synergy-crm/internal/infra/worker"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	emailRepo := database.NewEmailRepository(db)
	mailSender := mail.NewEmailSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From)

	dispatcher := worker.NewDispatcher(emailRepo, mailSender, cfg.DispatchInterval)
	dispatcher.RunOnce(context.Background())
}
