package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"drishti_backend/internal/booking"
	"drishti_backend/internal/booking/client"
	"drishti_backend/internal/booking/wizard"
	"drishti_backend/platform/logger"
	"drishti_backend/platform/validator"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	apiURL := flag.String("api", envOr("BOOKING_API_URL", "http://localhost:8080"), "base URL of the contact API")
	mobile := flag.Bool("mobile", false, "use the mobile schedule layout")
	tz := flag.String("tz", envOr("MEETING_TIMEZONE", "Asia/Kolkata"), "timezone that decides today's date")
	flag.Parse()

	log := logger.New(envOr("APP_ENV", "development"))

	loc, err := time.LoadLocation(*tz)
	if err != nil {
		log.Error("invalid timezone", "tz", *tz, "error", err)
		os.Exit(2)
	}

	layout := wizard.LayoutDesktop
	if *mobile {
		layout = wizard.LayoutMobile
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	form := wizard.New(
		layout,
		func() time.Time { return time.Now().In(loc) },
		client.New(*apiURL),
		booking.MustSchema(validator.New()),
	)

	s := newSession(form, os.Stdin, os.Stdout)
	if err := s.run(ctx); err != nil {
		log.Error("booking session ended", "error", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
