package app

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Palco-Teams-2/internal-dashboard/app/config"
	"github.com/Palco-Teams-2/internal-dashboard/app/models"
)

// WorkspaceService provisions Google Workspace accounts.
//
// PLACEHOLDER: responses are simulated in-process until Admin SDK
// credentials are available. Callers see the same shapes the real
// integration will return.
type WorkspaceService struct {
	adminEmail string
	domain     string
	logger     *slog.Logger
}

func NewWorkspaceService(cfg config.WorkspaceConfig, logger *slog.Logger) *WorkspaceService {
	return &WorkspaceService{
		adminEmail: cfg.AdminEmail,
		domain:     cfg.Domain,
		logger:     logger,
	}
}

var nonEmailChars = regexp.MustCompile(`[^a-z0-9-]`)

// GenerateEmail builds the work address for a new hire: first-last@domain,
// lowercased, with anything outside [a-z0-9-] stripped.
func (s *WorkspaceService) GenerateEmail(firstName, lastName string) string {
	local := strings.ToLower(strings.TrimSpace(firstName) + "-" + strings.TrimSpace(lastName))
	local = strings.ReplaceAll(local, " ", "-")
	local = nonEmailChars.ReplaceAllString(local, "")
	return fmt.Sprintf("%s@%s", local, s.domain)
}

// CreateAccount creates a Workspace account for the given work email.
func (s *WorkspaceService) CreateAccount(ctx context.Context, firstName, lastName, email, password string) (*models.WorkspaceAccount, error) {
	s.logger.Info("DUMMY: creating workspace account", "email", email)

	account := &models.WorkspaceAccount{
		UserID:    "gw_" + uuid.NewString(),
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Status:    "active",
	}

	s.logger.Info("DUMMY: workspace account created",
		"user_id", account.UserID,
		"email", account.Email,
		"created", time.Now().UTC().Format(time.RFC3339))
	return account, nil
}

// DeleteAccount suspends/removes a Workspace account.
func (s *WorkspaceService) DeleteAccount(ctx context.Context, email string) error {
	s.logger.Info("DUMMY: deleting workspace account", "email", email)
	return nil
}

// GetAccount returns account details for the given email.
func (s *WorkspaceService) GetAccount(ctx context.Context, email string) (*models.WorkspaceAccount, error) {
	s.logger.Info("DUMMY: fetching workspace account", "email", email)
	return &models.WorkspaceAccount{Email: email, Status: "active"}, nil
}
