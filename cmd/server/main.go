package main

import (
	"log"
	"os"

	"workflow-management-api/internal/database"
	"workflow-management-api/internal/notify"
	"workflow-management-api/internal/realtime"
	"workflow-management-api/internal/routes"
	"workflow-management-api/internal/scheduler"
)

func main() {
	// Init database
	database.InitDB()

	// Reminder sweeper: every minute, scan due & unsent, dispatch over the
	// websocket hub, mark sent. A failed dispatch (e.g. nobody has picked
	// the subtask yet) leaves the reminder unsent and it retries next tick.
	reminderScheduler := scheduler.New(
		database.GetDB(),
		notify.HubSender{Hub: realtime.GetHub()},
	)
	reminderScheduler.Start()
	defer reminderScheduler.Stop()

	// Setup the routes (public and protected routes)
	ginRoutes := routes.SetupRoutes()

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8008"
	}
	log.Printf("Server starting on port :%s", port)
	log.Println("API endpoints:")
	log.Println("  POST   /api/users/login")
	log.Println("  POST   /api/application/applications")
	log.Println("  PUT    /api/application/applications/:id/submit")
	log.Println("  PUT    /api/application/applications/:id/handover")
	log.Println("  POST   /api/application/:id/tasks")
	log.Println("  PUT    /api/application/:id/tasks/:task_id/pick")
	log.Println("  GET    /api/reports/team")
	log.Println("  GET    /health")

	if err := ginRoutes.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
