package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Palco-Teams-2/internal-dashboard/app/models"
)

// Health is a public health check endpoint.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// OffboardCloser removes a closer from every connected system. Each system
// is attempted independently and failures are collected, mirroring the
// partial-failure shape of bulk link deletes.
func OffboardCloser(c *gin.Context) {
	var req models.OffboardRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "email is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Minute)
	defer cancel()

	errs := []models.OffboardError{}
	record := func(system string, err error) {
		if err != nil {
			errs = append(errs, models.OffboardError{System: system, Error: err.Error()})
		}
	}

	record("googleWorkspace", workspace.DeleteAccount(ctx, req.Email))

	if req.ZoomUserID != "" {
		record("zoom", zoom.DeleteUser(ctx, req.ZoomUserID, "disassociate"))
	}

	record("calendly", calendly.RemoveUser(ctx, req.Email))

	if req.GHLUserID != "" {
		record("ghl", ghl.DeleteUser(ctx, req.GHLUserID))
	}

	if req.PhoneSID != "" {
		record("twilio", telephony.ReleaseNumber(req.PhoneSID))
	}

	// Payment links last: even if a system above failed, the closer's
	// checkout links should come down.
	if _, err := closerLinks.DeleteLinksForCloser(ctx, req.Email, ""); err != nil {
		record("whop", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": len(errs) == 0,
		"email":   req.Email,
		"errors":  errs,
	})
}

// GetPhoneNumbers lists the CRM location's numbers so the dashboard can
// cross-check what Twilio owns against what the CRM sees.
func GetPhoneNumbers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	numbers, err := ghl.GetPhoneNumbers(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// The CRM reports numbers in mixed formats; dedupe on digits only.
	seen := make(map[string]bool)
	unique := make([]models.GHLPhoneNumber, 0, len(numbers))
	for _, n := range numbers {
		digits := normalizePhone(n.PhoneNumber)
		if seen[digits] {
			continue
		}
		seen[digits] = true
		unique = append(unique, n)
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(unique),
		"numbers": unique,
	})
}
