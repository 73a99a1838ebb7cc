package app

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Palco-Teams-2/internal-dashboard/app/config"
	"github.com/Palco-Teams-2/internal-dashboard/app/models"
)

// ZoomService provisions Zoom accounts.
//
// PLACEHOLDER: responses are simulated until the Server-to-Server OAuth app
// is approved; the account/client credentials are already threaded through.
type ZoomService struct {
	accountID    string
	clientID     string
	clientSecret string
	logger       *slog.Logger
}

func NewZoomService(cfg config.ZoomConfig, logger *slog.Logger) *ZoomService {
	return &ZoomService{
		accountID:    cfg.AccountID,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		logger:       logger,
	}
}

// CreateUser creates a licensed Zoom user for the work email.
func (s *ZoomService) CreateUser(ctx context.Context, firstName, lastName, email string) (*models.ZoomUser, error) {
	s.logger.Info("DUMMY: creating zoom user", "email", email)

	user := &models.ZoomUser{
		UserID:    "zoom_" + uuid.NewString(),
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Status:    "active",
	}

	s.logger.Info("DUMMY: zoom user created", "user_id", user.UserID)
	return user, nil
}

// DeleteUser removes a Zoom user. action is "disassociate" or "delete".
func (s *ZoomService) DeleteUser(ctx context.Context, userID, action string) error {
	if action == "" {
		action = "disassociate"
	}
	s.logger.Info("DUMMY: deleting zoom user", "user_id", userID, "action", action)
	return nil
}

// GetUser returns details for a Zoom user.
func (s *ZoomService) GetUser(ctx context.Context, userID string) (*models.ZoomUser, error) {
	s.logger.Info("DUMMY: fetching zoom user", "user_id", userID)
	return &models.ZoomUser{UserID: userID, Status: "active"}, nil
}
