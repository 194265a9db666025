package routes

import (
	"workflow-management-api/internal/authz"
	"workflow-management-api/internal/handlers"
	"workflow-management-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes() *gin.Engine {
	// Create a new GIN Router
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204) // This depends on the implementation of the frontend
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Workflow Management API is running",
		})
	})

	api := ginRouter.Group("/api")

	// Public routes (no authentication required)
	api.POST("/users/register", handlers.RegisterUser)
	api.POST("/users/login", handlers.Login)
	api.POST("/account/register", handlers.RegisterAccount)
	api.POST("/account/login", handlers.AccountLogin)
	api.POST("/account/forgot-password", handlers.ForgotPassword)

	// User management (identity provider)
	api.POST("/users/member", middleware.RequireOperation(authz.OpUserCreateStaff), handlers.CreateMember)
	api.POST("/users/admin", middleware.RequireOperation(authz.OpUserCreateStaff), handlers.CreateAdmin)
	api.POST("/users/manager", middleware.RequireOperation(authz.OpUserCreateStaff), handlers.CreateManager)
	api.POST("/users/notaris", middleware.RequireOperation(authz.OpUserCreateStaff), handlers.CreateNotaris)
	api.POST("/users/reset-password", middleware.RequireOperation(authz.OpUserResetPassword), handlers.ResetPassword)
	api.GET("/users", middleware.RequireOperation(authz.OpUserList), handlers.GetAllUsers)
	api.DELETE("/account/:client_id", middleware.RequireOperation(authz.OpClientManage), handlers.DeleteAccount)

	// Applications and the workflow state machine
	app := api.Group("/application")
	app.POST("/applications", middleware.RequireOperation(authz.OpApplicationManage), handlers.CreateApplication)
	app.GET("/applications/:application_id", middleware.RequireOperation(authz.OpApplicationManage), handlers.GetApplication)
	app.PUT("/applications/:application_id", middleware.RequireOperation(authz.OpApplicationManage), handlers.UpdateApplication)
	app.DELETE("/applications/:application_id", middleware.RequireOperation(authz.OpApplicationManage), handlers.DeleteApplication)
	app.PUT("/applications/:application_id/submit", middleware.RequireOperation(authz.OpApplicationSubmit), handlers.SubmitToManager)
	app.PUT("/applications/:application_id/handover", middleware.RequireOperation(authz.OpApplicationHandover), handlers.HandoverToClient)
	app.GET("/clients/:client_id", middleware.RequireOperation(authz.OpApplicationProgress), handlers.CheckProgress)

	// Tasks, subtasks, checklist, hand-off
	app.POST("/:application_id/tasks", middleware.RequireOperation(authz.OpTaskManage), handlers.CreateTask)
	app.GET("/:application_id/tasks", middleware.RequireOperation(authz.OpTaskManage), handlers.GetTasks)
	app.PUT("/:application_id/tasks/:task_id", middleware.RequireOperation(authz.OpTaskManage), handlers.UpdateTask)
	app.DELETE("/:application_id/tasks/:task_id", middleware.RequireOperation(authz.OpTaskManage), handlers.DeleteTask)
	app.GET("/:application_id/tasks/:task_id/documents", middleware.RequireOperation(authz.OpTaskDocuments), handlers.GetTaskDocuments)
	app.POST("/:application_id/tasks/:task_id/subtasks", middleware.RequireOperation(authz.OpTaskManage), handlers.CreateSubtask)
	app.POST("/:application_id/tasks/:task_id/checklist", middleware.RequireOperation(authz.OpChecklistManage), handlers.CreateChecklistItem)
	app.PUT("/:application_id/tasks/:task_id/checklist", middleware.RequireOperation(authz.OpChecklistManage), handlers.UpdateChecklistItem)
	app.GET("/:application_id/tasks/:task_id/checklist", middleware.RequireOperation(authz.OpChecklistManage), handlers.GetChecklistItems)
	app.POST("/:application_id/tasks/assign", middleware.RequireOperation(authz.OpTaskAssign), handlers.AssignTaskToTeam)
	app.PUT("/:application_id/tasks/:task_id/pick", middleware.RequireOperation(authz.OpSubtaskPick), handlers.PickSubtask)
	app.GET("/teams/:team_id/tasks", middleware.RequireOperation(authz.OpTeamTasks), handlers.GetTasksByTeam)

	// Reports (read-only projections)
	api.GET("/reports/member", middleware.RequireOperation(authz.OpReportView), handlers.ReportMember)
	api.GET("/reports/team", middleware.RequireOperation(authz.OpReportView), handlers.ReportTeam)
	api.GET("/reports/application-type", middleware.RequireOperation(authz.OpReportView), handlers.ReportApplicationType)
	api.GET("/reports/successful-applications", middleware.RequireOperation(authz.OpReportView), handlers.ReportSuccessfulApplications)

	// Clients (staff-side CRUD)
	api.POST("/clients", middleware.RequireOperation(authz.OpClientManage), handlers.CreateClient)
	api.GET("/clients", middleware.RequireOperation(authz.OpClientManage), handlers.GetClients)
	api.GET("/clients/:client_id", middleware.RequireOperation(authz.OpClientManage), handlers.GetClientByID)
	api.PUT("/clients/:client_id", middleware.RequireOperation(authz.OpClientManage), handlers.UpdateClient)
	api.DELETE("/clients/:client_id", middleware.RequireOperation(authz.OpClientManage), handlers.DeleteClient)

	// Appointments and reminders
	api.POST("/appointments", middleware.RequireOperation(authz.OpAppointmentManage), handlers.CreateAppointment)
	api.GET("/appointments/:appointment_id", middleware.RequireOperation(authz.OpAppointmentManage), handlers.GetAppointment)
	api.PUT("/appointments/:appointment_id", middleware.RequireOperation(authz.OpAppointmentManage), handlers.UpdateAppointment)
	api.DELETE("/appointments/:appointment_id", middleware.RequireOperation(authz.OpAppointmentManage), handlers.DeleteAppointment)
	api.POST("/reminders", middleware.RequireOperation(authz.OpReminderManage), handlers.CreateReminder)
	api.GET("/subtasks/:subtask_id/reminders", middleware.RequireOperation(authz.OpReminderManage), handlers.GetSubtaskReminders)
	api.PUT("/reminders/:reminder_id", middleware.RequireOperation(authz.OpReminderManage), handlers.UpdateReminder)
	api.DELETE("/reminders/:reminder_id", middleware.RequireOperation(authz.OpReminderManage), handlers.DeleteReminder)

	// Documents (blob metadata)
	api.POST("/documents", middleware.RequireOperation(authz.OpTaskManage), handlers.CreateDocument)
	api.GET("/documents/:document_id", middleware.RequireOperation(authz.OpTaskDocuments), handlers.GetDocument)
	api.DELETE("/documents/:document_id", middleware.RequireOperation(authz.OpTaskManage), handlers.DeleteDocument)

	// Realtime events; any authenticated user may subscribe to their own feed
	api.GET("/ws", middleware.Authenticated(), handlers.WebSocketHandler)

	return ginRouter
}
