package mail_fx

import (
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/vivekdevkar123/BillEase-BE/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService() services.MailServiceInterface {
	port, err := strconv.Atoi(envOr("SMTP_PORT", "587"))
	if err != nil {
		log.Warn().Str("SMTP_PORT", os.Getenv("SMTP_PORT")).Msg("invalid SMTP_PORT, falling back to 587")
		port = 587
	}

	cfg := services.SMTPConfig{
		Host:       envOr("SMTP_HOST", "smtp.gmail.com"),
		Port:       port,
		Username:   os.Getenv("SMTP_USERNAME"),
		Password:   os.Getenv("SMTP_PASSWORD"), // use an app password if 2FA is enabled
		From:       envOr("SMTP_FROM", os.Getenv("SMTP_USERNAME")),
		FromName:   envOr("SMTP_FROM_NAME", "BillEase"),
		UseSSL:     port == 465,
		RequireTLS: true,

		AppName:    "BillEase",
		AppBaseURL: envOr("APP_BASE_URL", "http://localhost:3000"),
	}

	mailService, err := services.NewSMTPMailService(cfg)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize SMTP mail service")
	}
	return mailService
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
