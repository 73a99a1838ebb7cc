package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/Palco-Teams-2/internal-dashboard/app/config"
	"github.com/Palco-Teams-2/internal-dashboard/app/models"
)

// ghlAPIVersion is the Version header LeadConnector requires.
const ghlAPIVersion = "2021-07-28"

// GHLClient talks to the GoHighLevel (LeadConnector) CRM API.
type GHLClient struct {
	baseURL    string
	apiKey     string
	locationID string
	httpc      *http.Client
	logger     *slog.Logger
}

func NewGHLClient(cfg config.GHLConfig, logger *slog.Logger) *GHLClient {
	return &GHLClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		locationID: cfg.LocationID,
		httpc:      &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

func (g *GHLClient) doJSON(ctx context.Context, method, path string, params url.Values, body, out any) error {
	u := g.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Version", ghlAPIVersion)

	res, err := g.httpc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(res.Body).Decode(&msg)
		return fmt.Errorf("ghl http %d: %s", res.StatusCode, msg.Message)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

// CreateUser creates a CRM staff user in the configured location.
func (g *GHLClient) CreateUser(ctx context.Context, firstName, lastName, email, role string) (*models.GHLUser, error) {
	body := map[string]any{
		"firstName":   firstName,
		"lastName":    lastName,
		"email":       email,
		"role":        role,
		"locationIds": []string{g.locationID},
	}

	var user models.GHLUser
	if err := g.doJSON(ctx, http.MethodPost, "/users/", nil, body, &user); err != nil {
		return nil, fmt.Errorf("create ghl user: %w", err)
	}

	g.logger.Info("created ghl user", "user_id", user.ID, "email", email)
	return &user, nil
}

// GetUsers lists all staff in the location.
func (g *GHLClient) GetUsers(ctx context.Context) ([]models.GHLUser, error) {
	params := url.Values{}
	params.Set("locationId", g.locationID)

	var out struct {
		Users []models.GHLUser `json:"users"`
	}
	if err := g.doJSON(ctx, http.MethodGet, "/users/", params, nil, &out); err != nil {
		return nil, fmt.Errorf("fetch ghl users: %w", err)
	}
	return out.Users, nil
}

// GetUser fetches one staff user by id.
func (g *GHLClient) GetUser(ctx context.Context, userID string) (*models.GHLUser, error) {
	var user models.GHLUser
	if err := g.doJSON(ctx, http.MethodGet, "/users/"+userID, nil, nil, &user); err != nil {
		return nil, fmt.Errorf("fetch ghl user: %w", err)
	}
	return &user, nil
}

// DeleteUser removes a staff user from the location.
func (g *GHLClient) DeleteUser(ctx context.Context, userID string) error {
	if err := g.doJSON(ctx, http.MethodDelete, "/users/"+userID, nil, nil, nil); err != nil {
		return fmt.Errorf("delete ghl user: %w", err)
	}
	g.logger.Info("deleted ghl user", "user_id", userID)
	return nil
}

// GetPhoneNumbers lists the location's LC Phone System numbers. The response
// key has changed between API revisions, so several shapes are accepted.
func (g *GHLClient) GetPhoneNumbers(ctx context.Context) ([]models.GHLPhoneNumber, error) {
	var out struct {
		Numbers      []models.GHLPhoneNumber `json:"numbers"`
		PhoneNumbers []models.GHLPhoneNumber `json:"phoneNumbers"`
		Data         []models.GHLPhoneNumber `json:"data"`
	}
	if err := g.doJSON(ctx, http.MethodGet, "/phone-system/numbers/location/"+g.locationID, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("fetch ghl phone numbers: %w", err)
	}

	switch {
	case len(out.Numbers) > 0:
		return out.Numbers, nil
	case len(out.PhoneNumbers) > 0:
		return out.PhoneNumbers, nil
	default:
		return out.Data, nil
	}
}
