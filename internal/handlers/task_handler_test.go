package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"workflow-management-api/internal/authz"
	"workflow-management-api/internal/middleware"
	"workflow-management-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func taskRouter() *gin.Engine {
	r := gin.New()
	app := r.Group("/api/application")
	app.POST("/:application_id/tasks", middleware.RequireOperation(authz.OpTaskManage), CreateTask)
	app.GET("/:application_id/tasks", middleware.RequireOperation(authz.OpTaskManage), GetTasks)
	app.GET("/:application_id/tasks/:task_id/documents", middleware.RequireOperation(authz.OpTaskDocuments), GetTaskDocuments)
	app.POST("/:application_id/tasks/:task_id/subtasks", middleware.RequireOperation(authz.OpTaskManage), CreateSubtask)
	app.POST("/:application_id/tasks/:task_id/checklist", middleware.RequireOperation(authz.OpChecklistManage), CreateChecklistItem)
	app.PUT("/:application_id/tasks/:task_id/checklist", middleware.RequireOperation(authz.OpChecklistManage), UpdateChecklistItem)
	app.POST("/:application_id/tasks/assign", middleware.RequireOperation(authz.OpTaskAssign), AssignTaskToTeam)
	app.PUT("/:application_id/tasks/:task_id/pick", middleware.RequireOperation(authz.OpSubtaskPick), PickSubtask)
	app.GET("/teams/:team_id/tasks", middleware.RequireOperation(authz.OpTeamTasks), GetTasksByTeam)
	return r
}

func seedApplication(t *testing.T, db *gorm.DB) models.Application {
	t.Helper()
	app := models.Application{ClientID: 1, Status: models.ApplicationPending}
	require.NoError(t, db.Create(&app).Error)
	return app
}

func TestCreateTask_LinksDocumentsOverHTTP(t *testing.T) {
	db := setupHandlerTest(t)
	r := taskRouter()
	token := tokenFor(t, 1, "manager", models.RoleManager)

	app := seedApplication(t, db)
	doc := models.Document{FilePath: "/blobs/contract.pdf"}
	require.NoError(t, db.Create(&doc).Error)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost,
		fmt.Sprintf("/api/application/%d/tasks", app.ID), token,
		map[string]any{
			"title":        "Prepare contract",
			"description":  "Draft and review",
			"document_ids": []uint{doc.ID},
		}))
	require.Equal(t, http.StatusCreated, w.Code)

	var task models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	require.Equal(t, models.StatusPending, task.Status)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodGet,
		fmt.Sprintf("/api/application/%d/tasks/%d/documents", app.ID, task.ID), token, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var docs []models.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &docs))
	require.Len(t, docs, 1)
	require.Equal(t, "/blobs/contract.pdf", docs[0].FilePath)
}

func TestCreateTask_MissingApplication404(t *testing.T) {
	setupHandlerTest(t)
	r := taskRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost,
		"/api/application/404/tasks", tokenFor(t, 1, "manager", models.RoleManager),
		map[string]any{"title": "orphan"}))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestPickSubtask_MemberHandOff(t *testing.T) {
	db := setupHandlerTest(t)
	r := taskRouter()
	managerToken := tokenFor(t, 1, "manager", models.RoleManager)

	app := seedApplication(t, db)
	task := models.Task{ApplicationID: &app.ID, Title: "team work", Status: models.StatusPending}
	require.NoError(t, db.Create(&task).Error)
	team := models.Team{Name: "alpha"}
	require.NoError(t, db.Create(&team).Error)

	// Phase one: the manager assigns the task to the team.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost,
		fmt.Sprintf("/api/application/%d/tasks/assign", app.ID), managerToken,
		map[string]any{"task_id": task.ID, "team_id": team.ID}))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost,
		fmt.Sprintf("/api/application/%d/tasks/%d/subtasks", app.ID, task.ID), managerToken,
		map[string]any{"title": "collect signatures"}))
	require.Equal(t, http.StatusCreated, w.Code)
	var sub models.Subtask
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sub))

	// Members browse the team's work, then claim a subtask.
	memberToken := tokenFor(t, 21, "m1", models.RoleMember)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodGet,
		fmt.Sprintf("/api/application/teams/%d/tasks", team.ID), memberToken, nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPut,
		fmt.Sprintf("/api/application/%d/tasks/%d/pick", app.ID, sub.ID), memberToken, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var picked models.Subtask
	require.NoError(t, db.First(&picked, sub.ID).Error)
	require.Equal(t, uint(21), *picked.AssignedTo)
	require.Equal(t, models.StatusInProgress, picked.Status)

	// A second member loses the race and the claim stays with the first.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPut,
		fmt.Sprintf("/api/application/%d/tasks/%d/pick", app.ID, sub.ID),
		tokenFor(t, 22, "m2", models.RoleMember), nil))
	require.Equal(t, http.StatusConflict, w.Code)

	require.NoError(t, db.First(&picked, sub.ID).Error)
	require.Equal(t, uint(21), *picked.AssignedTo)
}

func TestPickSubtask_ManagerForbidden(t *testing.T) {
	setupHandlerTest(t)
	r := taskRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPut,
		"/api/application/1/tasks/1/pick", tokenFor(t, 1, "manager", models.RoleManager), nil))
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestChecklistOverHTTP(t *testing.T) {
	db := setupHandlerTest(t)
	r := taskRouter()
	token := tokenFor(t, 1, "manager", models.RoleManager)

	app := seedApplication(t, db)
	task := models.Task{ApplicationID: &app.ID, Title: "parent", Status: models.StatusPending}
	require.NoError(t, db.Create(&task).Error)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost,
		fmt.Sprintf("/api/application/%d/tasks/%d/checklist", app.ID, task.ID), token,
		map[string]any{"title": "notarize"}))
	require.Equal(t, http.StatusCreated, w.Code)

	var item models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	require.True(t, item.IsChecklist)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPut,
		fmt.Sprintf("/api/application/%d/tasks/%d/checklist", app.ID, item.ID), token,
		map[string]any{"is_completed": true}))
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Task
	require.NoError(t, db.First(&stored, item.ID).Error)
	require.True(t, stored.IsCompleted)
}
