package handlers

import (
	"net/http"
	"time"

	"workflow-management-api/internal/cache"
	"workflow-management-api/internal/database"
	"workflow-management-api/internal/reports"

	"github.com/gin-gonic/gin"
)

// reportCache shields the aggregation queries from tight polling; report
// data may be a few seconds stale.
var reportCache = cache.NewTTLCache[string, any]()

const reportCacheTTL = 5 * time.Second

// ResetReportCache drops cached projections. Tests call it when they swap
// the database out from under the handlers.
func ResetReportCache() {
	reportCache.Delete("member")
	reportCache.Delete("team")
	reportCache.Delete("application-type")
	reportCache.Delete("successful-applications")
}

func serveReport(c *gin.Context, key string, compute func() (any, error), failure string) {
	if cached, ok := reportCache.Get(key); ok {
		c.JSON(http.StatusOK, cached)
		return
	}
	result, err := compute()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": failure})
		return
	}
	reportCache.Set(key, result, reportCacheTTL)
	c.JSON(http.StatusOK, result)
}

// ReportMember handles GET /api/reports/member
func ReportMember(c *gin.Context) {
	serveReport(c, "member", func() (any, error) {
		return reports.ReportMember(database.GetDB())
	}, "Failed to generate member report")
}

// ReportTeam handles GET /api/reports/team
func ReportTeam(c *gin.Context) {
	serveReport(c, "team", func() (any, error) {
		return reports.ReportTeam(database.GetDB())
	}, "Failed to generate team report")
}

// ReportApplicationType handles GET /api/reports/application-type
func ReportApplicationType(c *gin.Context) {
	serveReport(c, "application-type", func() (any, error) {
		return reports.ReportApplicationType(database.GetDB())
	}, "Failed to generate application type report")
}

// ReportSuccessfulApplications handles GET /api/reports/successful-applications
func ReportSuccessfulApplications(c *gin.Context) {
	serveReport(c, "successful-applications", func() (any, error) {
		count, err := reports.ReportSuccessfulApplications(database.GetDB())
		if err != nil {
			return nil, err
		}
		return gin.H{"successful_applications_count": count}, nil
	}, "Failed to generate successful applications report")
}
