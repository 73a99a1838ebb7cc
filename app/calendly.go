package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Palco-Teams-2/internal-dashboard/app/config"
	"github.com/Palco-Teams-2/internal-dashboard/app/models"
)

// calendlyAPI is the slice of the Calendly service the handlers use. The
// dummy service never fails, so the degraded wizard path is only reachable
// through this seam.
type calendlyAPI interface {
	InviteUser(ctx context.Context, email, firstName, lastName string) (*models.CalendlyInvitation, error)
	RemoveUser(ctx context.Context, userURI string) error
}

// CalendlyService manages Calendly organization membership.
//
// PLACEHOLDER: invitations are simulated until the org API token lands.
type CalendlyService struct {
	apiToken        string
	organizationURI string
	logger          *slog.Logger
}

func NewCalendlyService(cfg config.CalendlyConfig, logger *slog.Logger) *CalendlyService {
	return &CalendlyService{
		apiToken:        cfg.APIToken,
		organizationURI: cfg.OrganizationURI,
		logger:          logger,
	}
}

// InviteUser sends an organization invitation to the given email.
func (s *CalendlyService) InviteUser(ctx context.Context, email, firstName, lastName string) (*models.CalendlyInvitation, error) {
	s.logger.Info("DUMMY: inviting to calendly org", "email", email)

	invite := &models.CalendlyInvitation{
		InvitationID: "cal_inv_" + uuid.NewString(),
		Email:        email,
		Status:       "pending",
		SentAt:       time.Now().UTC().Format(time.RFC3339),
	}

	s.logger.Info("DUMMY: calendly invitation sent", "invitation_id", invite.InvitationID)
	return invite, nil
}

// RemoveUser removes a member from the Calendly organization.
func (s *CalendlyService) RemoveUser(ctx context.Context, userURI string) error {
	s.logger.Info("DUMMY: removing calendly member", "user_uri", userURI)
	return nil
}

// GetUser looks up an organization member by email.
func (s *CalendlyService) GetUser(ctx context.Context, email string) (*models.CalendlyInvitation, error) {
	s.logger.Info("DUMMY: fetching calendly member", "email", email)
	return &models.CalendlyInvitation{Email: email, Status: "active"}, nil
}
