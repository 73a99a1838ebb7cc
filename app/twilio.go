package app

import (
	"fmt"
	"log/slog"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
	messaging "github.com/twilio/twilio-go/rest/messaging/v1"

	"github.com/Palco-Teams-2/internal-dashboard/app/config"
	"github.com/Palco-Teams-2/internal-dashboard/app/models"
)

// telephonyAPI is the number-provisioning surface the handlers use. The SDK
// client cannot be pointed at a mock transport, so failure paths are tested
// through this seam.
type telephonyAPI interface {
	SearchAvailableNumbers(areaCode, limit int) ([]models.PhoneNumber, error)
	PurchaseNumber(phoneNumber, friendlyName string) (*models.PhoneNumber, error)
	AddToMessagingService(phoneSID string) error
	AddToCampaign(phoneSID string) error
	ReleaseNumber(phoneSID string) error
}

// TwilioService purchases and manages closer phone numbers.
type TwilioService struct {
	client              *twilio.RestClient
	messagingServiceSID string
	campaignServiceSID  string
	logger              *slog.Logger
}

func NewTwilioService(cfg config.TwilioConfig, logger *slog.Logger) *TwilioService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &TwilioService{
		client:              client,
		messagingServiceSID: cfg.MessagingServiceSID,
		campaignServiceSID:  cfg.CampaignServiceSID,
		logger:              logger,
	}
}

// SearchAvailableNumbers lists purchasable US local numbers in an area code.
func (s *TwilioService) SearchAvailableNumbers(areaCode, limit int) ([]models.PhoneNumber, error) {
	params := &twilioapi.ListAvailablePhoneNumberLocalParams{}
	params.SetAreaCode(areaCode)
	params.SetLimit(limit)

	available, err := s.client.Api.ListAvailablePhoneNumberLocal("US", params)
	if err != nil {
		return nil, fmt.Errorf("search available numbers: %w", err)
	}

	var numbers []models.PhoneNumber
	for _, n := range available {
		if n.PhoneNumber == nil {
			continue
		}
		num := models.PhoneNumber{PhoneNumber: *n.PhoneNumber}
		if n.FriendlyName != nil {
			num.FriendlyName = *n.FriendlyName
		}
		numbers = append(numbers, num)
	}

	s.logger.Info("searched available numbers", "area_code", areaCode, "found", len(numbers))
	return numbers, nil
}

// PurchaseNumber buys a number and labels it with the closer's name.
func (s *TwilioService) PurchaseNumber(phoneNumber, friendlyName string) (*models.PhoneNumber, error) {
	params := &twilioapi.CreateIncomingPhoneNumberParams{}
	params.SetPhoneNumber(phoneNumber)
	params.SetFriendlyName(friendlyName)

	purchased, err := s.client.Api.CreateIncomingPhoneNumber(params)
	if err != nil {
		return nil, fmt.Errorf("purchase number %s: %w", phoneNumber, err)
	}

	num := &models.PhoneNumber{FriendlyName: friendlyName}
	if purchased.Sid != nil {
		num.SID = *purchased.Sid
	}
	if purchased.PhoneNumber != nil {
		num.PhoneNumber = *purchased.PhoneNumber
	}

	s.logger.Info("purchased number", "number", num.PhoneNumber, "sid", num.SID)
	return num, nil
}

// AddToMessagingService attaches a purchased number to the messaging service.
func (s *TwilioService) AddToMessagingService(phoneSID string) error {
	params := &messaging.CreatePhoneNumberParams{}
	params.SetPhoneNumberSid(phoneSID)

	if _, err := s.client.MessagingV1.CreatePhoneNumber(s.messagingServiceSID, params); err != nil {
		return fmt.Errorf("add number to messaging service: %w", err)
	}
	return nil
}

// AddToCampaign attaches a purchased number to the A2P campaign's service.
func (s *TwilioService) AddToCampaign(phoneSID string) error {
	params := &messaging.CreatePhoneNumberParams{}
	params.SetPhoneNumberSid(phoneSID)

	if _, err := s.client.MessagingV1.CreatePhoneNumber(s.campaignServiceSID, params); err != nil {
		return fmt.Errorf("add number to campaign: %w", err)
	}
	return nil
}

// ReleaseNumber releases an owned number back to Twilio.
func (s *TwilioService) ReleaseNumber(phoneSID string) error {
	if err := s.client.Api.DeleteIncomingPhoneNumber(phoneSID, &twilioapi.DeleteIncomingPhoneNumberParams{}); err != nil {
		return fmt.Errorf("release number %s: %w", phoneSID, err)
	}
	s.logger.Info("released number", "sid", phoneSID)
	return nil
}
