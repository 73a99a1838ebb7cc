package app

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Palco-Teams-2/internal-dashboard/app/models"
)

// A full fetch walks every product with pacing delays, so these handlers
// get a generous deadline.
const fullFetchTimeout = 2 * time.Minute

// GetCloserLinks returns the flat closer-link list, optionally bypassing
// the cache with ?refresh=true.
func GetCloserLinks(c *gin.Context) {
	refresh := c.Query("refresh") == "true"

	ctx, cancel := context.WithTimeout(c.Request.Context(), fullFetchTimeout)
	defer cancel()

	links, err := closerLinks.AllCloserLinks(ctx, refresh)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(links),
		"links": links,
	})
}

// GetCloserLinksGrouped returns all links grouped by closer email.
func GetCloserLinksGrouped(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), fullFetchTimeout)
	defer cancel()

	groups, err := closerLinks.CloserLinksGrouped(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(groups),
		"closers": groups,
	})
}

// GetCloserLinksByProduct returns priority products with closers grouped
// inside each.
func GetCloserLinksByProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), fullFetchTimeout)
	defer cancel()

	products, err := closerLinks.CloserLinksGroupedByProduct(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(products),
		"products": products,
	})
}

// GetLinksForCloser returns one closer's links from the priority products.
func GetLinksForCloser(c *gin.Context) {
	email := strings.ToLower(c.Param("email"))

	ctx, cancel := context.WithTimeout(c.Request.Context(), fullFetchTimeout)
	defer cancel()

	links, err := closerLinks.LinksForCloser(ctx, email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email": email,
		"count": len(links),
		"links": links,
	})
}

// DeleteCloserLinks deletes all of a closer's links, optionally limited to
// one product via ?productId=. Partial failures are reported inline.
func DeleteCloserLinks(c *gin.Context) {
	email := strings.ToLower(c.Param("email"))
	productID := c.Query("productId")

	ctx, cancel := context.WithTimeout(c.Request.Context(), fullFetchTimeout)
	defer cancel()

	result, err := closerLinks.DeleteLinksForCloser(ctx, email, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeletePlanByID deletes a single plan.
func DeletePlanByID(c *gin.Context) {
	planID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	if err := closerLinks.DeletePlan(ctx, planID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": planID})
}

// UpdatePlanByID patches a plan; only the provided fields are sent upstream.
func UpdatePlanByID(c *gin.Context) {
	planID := c.Param("id")

	var updates models.PlanUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update payload"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	plan, err := closerLinks.UpdatePlan(ctx, planID, updates)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

// ClearLinksCache drops the cached snapshot so the next read refetches.
func ClearLinksCache(c *gin.Context) {
	closerLinks.ClearCache()
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}
