package models

// OnboardRequest is the shared body of the wizard step endpoints.
type OnboardRequest struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	PersonalEmail string `json:"personalEmail"`
}

// WorkspaceAccount is the provisioning result for a Google Workspace account.
type WorkspaceAccount struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Status    string `json:"status"`
}

// ZoomUser is the provisioning result for a Zoom account.
type ZoomUser struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Status    string `json:"status"`
}

// CalendlyInvitation is the result of inviting a user to the Calendly org.
type CalendlyInvitation struct {
	InvitationID string `json:"invitationId"`
	Email        string `json:"email"`
	Status       string `json:"status"`
	SentAt       string `json:"sentAt"`
}

// GHLUser is a staff member in the CRM location.
type GHLUser struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// GHLPhoneNumber is one number in the CRM phone system.
type GHLPhoneNumber struct {
	ID          string `json:"id"`
	PhoneNumber string `json:"phoneNumber"`
	Name        string `json:"name"`
}

// PhoneNumber is a telephony number, either available for purchase or owned.
type PhoneNumber struct {
	SID          string `json:"sid,omitempty"`
	PhoneNumber  string `json:"phoneNumber"`
	FriendlyName string `json:"friendlyName,omitempty"`
}

// OffboardRequest identifies the accounts to remove across all systems.
type OffboardRequest struct {
	Email      string `json:"email"`
	ZoomUserID string `json:"zoomUserId"`
	GHLUserID  string `json:"ghlUserId"`
	PhoneSID   string `json:"phoneSid"`
}

// OffboardError records one system that failed during offboarding.
type OffboardError struct {
	System string `json:"system"`
	Error  string `json:"error"`
}
