// Package app wires the onboarding services and shared HTTP routes.
package app

import (
	"log"
	"log/slog"
	"os"

	"github.com/Palco-Teams-2/internal-dashboard/app/config"
)

// Service singletons used by the route handlers. Tests swap these for
// instances backed by mock transports.
var (
	closerLinks *CloserLinkService
	workspace   *WorkspaceService
	zoom        *ZoomService
	calendly    calendlyAPI
	ghl         *GHLClient
	telephony   telephonyAPI
)

// MustInitServices builds every service from the environment and fails
// loudly when configuration cannot be loaded.
func MustInitServices() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	closerLinks = NewCloserLinkService(
		NewWhopClient(cfg.Whop, logger.With("component", "whop")),
		logger.With("component", "closers"),
	)
	workspace = NewWorkspaceService(cfg.Workspace, logger.With("component", "workspace"))
	zoom = NewZoomService(cfg.Zoom, logger.With("component", "zoom"))
	calendly = NewCalendlyService(cfg.Calendly, logger.With("component", "calendly"))
	ghl = NewGHLClient(cfg.GHL, logger.With("component", "ghl"))
	telephony = NewTwilioService(cfg.Twilio, logger.With("component", "twilio"))
}
