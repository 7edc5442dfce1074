package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"task-manager/backend/handlers"
	"task-manager/backend/logging"
	"task-manager/backend/middleware"
	"task-manager/backend/repositories"
	"task-manager/backend/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	logging.InitLogger()

	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Task Manager backend...")
	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_WARNING, Description: No .env file loaded: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	mongoDBName := os.Getenv("MONGO_DB_NAME")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	defer client.Disconnect(ctx)

	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", mongoURI)

	tasksCollection := client.Database(mongoDBName).Collection("tasks")
	usersCollection := client.Database(mongoDBName).Collection("users")

	mongoBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "MongoReadCB",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	taskRepo := repositories.NewTaskRepository(tasksCollection, mongoBreaker)
	userRepo := repositories.NewUserRepository(usersCollection, mongoBreaker)

	analytics := services.NewAnalyticsService()
	dashboardService := services.NewDashboardService(taskRepo, analytics)
	taskService := services.NewTaskService(taskRepo, userRepo, analytics)
	userService := services.NewUserService(userRepo, taskRepo, analytics)
	reportService := services.NewReportService(taskRepo, userRepo, analytics)
	exportService := services.NewExportService()

	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService, dashboardService)
	reportHandler := handlers.NewReportHandler(reportService, exportService)

	r := mux.NewRouter()

	r.HandleFunc("/api/auth/register", authHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods(http.MethodPost)
	r.Handle("/api/auth/profile", middleware.Protect(http.HandlerFunc(authHandler.GetProfile))).Methods(http.MethodGet)
	r.Handle("/api/auth/profile", middleware.Protect(http.HandlerFunc(authHandler.UpdateProfile))).Methods(http.MethodPut)

	r.Handle("/api/users", middleware.Protect(middleware.AdminOnly(http.HandlerFunc(userHandler.GetUsers)))).Methods(http.MethodGet)
	r.Handle("/api/users/{id}", middleware.Protect(http.HandlerFunc(userHandler.GetUserByID))).Methods(http.MethodGet)

	r.Handle("/api/tasks/dashboard-data", middleware.Protect(http.HandlerFunc(taskHandler.GetDashboardData))).Methods(http.MethodGet)
	r.Handle("/api/tasks", middleware.Protect(http.HandlerFunc(taskHandler.GetTasks))).Methods(http.MethodGet)
	r.Handle("/api/tasks/{id}", middleware.Protect(http.HandlerFunc(taskHandler.GetTaskByID))).Methods(http.MethodGet)

	r.Handle("/api/reports/export/tasks", middleware.Protect(middleware.AdminOnly(http.HandlerFunc(reportHandler.ExportTasksReport)))).Methods(http.MethodGet)
	r.Handle("/api/reports/export/users", middleware.Protect(middleware.AdminOnly(http.HandlerFunc(reportHandler.ExportUsersReport)))).Methods(http.MethodGet)

	corsRouter := enableCORS(r)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: SERVER_PORT is not set in the environment variables.")
	}

	serverAddress := fmt.Sprintf(":%s", serverPort)
	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", serverAddress)

	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      corsRouter,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}
