package reports

import (
	"fmt"

	"workflow-management-api/internal/models"

	"gorm.io/gorm"
)

// Read-side aggregation over the hierarchy store. Nothing in this package
// mutates state.

// MemberReport counts a member's subtasks by status.
type MemberReport struct {
	AssignedTo *uint `json:"assigned_to"`
	Done       int64 `json:"done"`
	InProgress int64 `json:"in_progress"`
}

// ReportMember groups subtasks by assignee.
func ReportMember(db *gorm.DB) ([]MemberReport, error) {
	rows := make([]MemberReport, 0)
	err := db.Model(&models.Subtask{}).
		Select(
			"assigned_to, "+
				"SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS done, "+
				"SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS in_progress",
			models.StatusCompleted, models.StatusInProgress,
		).
		Group("assigned_to").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("member report: %w", err)
	}
	return rows, nil
}

// TeamReport counts a team's tasks by status. Available is the count still
// at Pending.
type TeamReport struct {
	TeamID     *uint `json:"team_id"`
	Done       int64 `json:"done"`
	InProgress int64 `json:"in_progress"`
	Available  int64 `json:"available"`
}

// ReportTeam groups tasks by team.
func ReportTeam(db *gorm.DB) ([]TeamReport, error) {
	rows := make([]TeamReport, 0)
	err := db.Model(&models.Task{}).
		Select(
			"team_id, "+
				"SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS done, "+
				"SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS in_progress, "+
				"SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS available",
			models.StatusCompleted, models.StatusInProgress, models.StatusPending,
		).
		Group("team_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("team report: %w", err)
	}
	return rows, nil
}

// StatusPercentage is one slice of the application status breakdown,
// percentage formatted like "50.00%".
type StatusPercentage struct {
	Status     string `json:"status"`
	Percentage string `json:"percentage"`
}

// ReportApplicationType breaks down all non-deleted applications by status.
// A total of zero yields an empty slice, never a division by zero.
func ReportApplicationType(db *gorm.DB) ([]StatusPercentage, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	err := db.Model(&models.Application{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status asc").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("application type report: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c.Count
	}
	out := make([]StatusPercentage, 0, len(counts))
	if total == 0 {
		return out, nil
	}
	for _, c := range counts {
		out = append(out, StatusPercentage{
			Status:     c.Status,
			Percentage: fmt.Sprintf("%.2f%%", float64(c.Count)/float64(total)*100),
		})
	}
	return out, nil
}

// ReportSuccessfulApplications counts applications that reached Approved.
func ReportSuccessfulApplications(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Application{}).
		Where("status = ?", models.ApplicationApproved).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("successful applications report: %w", err)
	}
	return count, nil
}
