package config

import (
	"os"

	// this will automatically load your .env file:
	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Whop      WhopConfig
	GHL       GHLConfig
	Twilio    TwilioConfig
	Workspace WorkspaceConfig
	Zoom      ZoomConfig
	Calendly  CalendlyConfig
}

type WhopConfig struct {
	APIKey    string
	CompanyID string
	BaseURL   string
}

type GHLConfig struct {
	APIKey     string
	LocationID string
	BaseURL    string
}

type TwilioConfig struct {
	AccountSID          string
	AuthToken           string
	MessagingServiceSID string
	CampaignServiceSID  string
}

type WorkspaceConfig struct {
	AdminEmail string
	Domain     string
}

type ZoomConfig struct {
	AccountID    string
	ClientID     string
	ClientSecret string
}

type CalendlyConfig struct {
	APIToken        string
	OrganizationURI string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Whop: WhopConfig{
			APIKey:    os.Getenv("WHOP_API_KEY"),
			CompanyID: envOr("WHOP_COMPANY_ID", "biz_7hs7GneaLhaFT5"),
			BaseURL:   envOr("WHOP_BASE_URL", "https://api.whop.com/api/v1"),
		},
		GHL: GHLConfig{
			APIKey:     os.Getenv("GHL_API_KEY"),
			LocationID: os.Getenv("GHL_LOCATION_ID"),
			BaseURL:    envOr("GHL_BASE_URL", "https://services.leadconnectorhq.com"),
		},
		Twilio: TwilioConfig{
			AccountSID:          os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:           os.Getenv("TWILIO_AUTH_TOKEN"),
			MessagingServiceSID: os.Getenv("TWILIO_MESSAGING_SERVICE_SID"),
			CampaignServiceSID:  os.Getenv("TWILIO_A2P_SERVICE_SID"),
		},
		Workspace: WorkspaceConfig{
			AdminEmail: envOr("GOOGLE_WORKSPACE_ADMIN_EMAIL", "admin@tjr-trades.com"),
			Domain:     envOr("GOOGLE_WORKSPACE_DOMAIN", "tjr-trades.com"),
		},
		Zoom: ZoomConfig{
			AccountID:    envOr("ZOOM_ACCOUNT_ID", "dummy_account"),
			ClientID:     envOr("ZOOM_CLIENT_ID", "dummy_client_id"),
			ClientSecret: envOr("ZOOM_CLIENT_SECRET", "dummy_secret"),
		},
		Calendly: CalendlyConfig{
			APIToken:        envOr("CALENDLY_API_TOKEN", "dummy_token"),
			OrganizationURI: os.Getenv("CALENDLY_ORG_URI"),
		},
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
