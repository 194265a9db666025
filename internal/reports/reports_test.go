package reports

import (
	"testing"

	"workflow-management-api/internal/models"
	"workflow-management-api/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReportDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	return db
}

func seedApplications(t *testing.T, db *gorm.DB, statuses ...models.ApplicationStatus) {
	t.Helper()
	for _, st := range statuses {
		require.NoError(t, db.Create(&models.Application{ClientID: 1, Status: st}).Error)
	}
}

func TestReportApplicationType_Percentages(t *testing.T) {
	db := newReportDB(t)
	seedApplications(t, db,
		models.ApplicationPending, models.ApplicationPending,
		models.ApplicationApproved, models.ApplicationApproved)

	out, err := ReportApplicationType(db)
	require.NoError(t, err)
	require.Equal(t, []StatusPercentage{
		{Status: string(models.ApplicationApproved), Percentage: "50.00%"},
		{Status: string(models.ApplicationPending), Percentage: "50.00%"},
	}, out)
}

func TestReportApplicationType_Empty(t *testing.T) {
	db := newReportDB(t)
	out, err := ReportApplicationType(db)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Empty(t, out)
}

func TestReportApplicationType_IgnoresDeleted(t *testing.T) {
	db := newReportDB(t)
	seedApplications(t, db, models.ApplicationPending, models.ApplicationApproved)

	require.NoError(t, db.
		Where("status = ?", models.ApplicationPending).
		Delete(&models.Application{}).Error)

	out, err := ReportApplicationType(db)
	require.NoError(t, err)
	require.Equal(t, []StatusPercentage{
		{Status: string(models.ApplicationApproved), Percentage: "100.00%"},
	}, out)
}

func TestReportSuccessfulApplications(t *testing.T) {
	db := newReportDB(t)
	seedApplications(t, db,
		models.ApplicationApproved, models.ApplicationApproved,
		models.ApplicationRejected, models.ApplicationPending)

	count, err := ReportSuccessfulApplications(db)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
}

func TestReportMember_GroupsByAssignee(t *testing.T) {
	db := newReportDB(t)

	app := models.Application{ClientID: 1, Status: models.ApplicationPending}
	require.NoError(t, db.Create(&app).Error)
	task := models.Task{ApplicationID: &app.ID, Title: "t", Status: models.StatusPending}
	require.NoError(t, db.Create(&task).Error)

	m1, m2 := uint(1), uint(2)
	subs := []models.Subtask{
		{TaskID: task.ID, Title: "a", Status: models.StatusCompleted, AssignedTo: &m1},
		{TaskID: task.ID, Title: "b", Status: models.StatusCompleted, AssignedTo: &m1},
		{TaskID: task.ID, Title: "c", Status: models.StatusInProgress, AssignedTo: &m2},
	}
	for i := range subs {
		require.NoError(t, db.Create(&subs[i]).Error)
	}

	rows, err := ReportMember(db)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byMember := map[uint]MemberReport{}
	for _, r := range rows {
		require.NotNil(t, r.AssignedTo)
		byMember[*r.AssignedTo] = r
	}
	require.Equal(t, int64(2), byMember[m1].Done)
	require.Equal(t, int64(0), byMember[m1].InProgress)
	require.Equal(t, int64(0), byMember[m2].Done)
	require.Equal(t, int64(1), byMember[m2].InProgress)
}

func TestReportTeam_CountsAvailable(t *testing.T) {
	db := newReportDB(t)

	app := models.Application{ClientID: 1, Status: models.ApplicationPending}
	require.NoError(t, db.Create(&app).Error)
	team := models.Team{Name: "alpha"}
	require.NoError(t, db.Create(&team).Error)

	tasks := []models.Task{
		{ApplicationID: &app.ID, Title: "done", Status: models.StatusCompleted, TeamID: &team.ID},
		{ApplicationID: &app.ID, Title: "busy", Status: models.StatusInProgress, TeamID: &team.ID},
		{ApplicationID: &app.ID, Title: "open", Status: models.StatusPending, TeamID: &team.ID},
		{ApplicationID: &app.ID, Title: "open2", Status: models.StatusPending, TeamID: &team.ID},
	}
	for i := range tasks {
		require.NoError(t, db.Create(&tasks[i]).Error)
	}

	rows, err := ReportTeam(db)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, team.ID, *rows[0].TeamID)
	require.Equal(t, int64(1), rows[0].Done)
	require.Equal(t, int64(1), rows[0].InProgress)
	require.Equal(t, int64(2), rows[0].Available)
}
