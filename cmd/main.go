package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"sprintdesk/internal/config"
	"sprintdesk/internal/features/analytics"
	"sprintdesk/internal/features/audit_logs"
	"sprintdesk/internal/features/bandwidth"
	"sprintdesk/internal/features/notifications"
	notifications_controllers "sprintdesk/internal/features/notifications/controllers"
	projects_controllers "sprintdesk/internal/features/projects/controllers"
	projects_services "sprintdesk/internal/features/projects/services"
	"sprintdesk/internal/features/reminders"
	sprints_controllers "sprintdesk/internal/features/sprints/controllers"
	sprints_services "sprintdesk/internal/features/sprints/services"
	system_healthcheck "sprintdesk/internal/features/system/healthcheck"
	tasks_controllers "sprintdesk/internal/features/tasks/controllers"
	teams_controllers "sprintdesk/internal/features/teams/controllers"
	teams_middleware "sprintdesk/internal/features/teams/middleware"
	teams_services "sprintdesk/internal/features/teams/services"
	users_controllers "sprintdesk/internal/features/users/controllers"
	users_middleware "sprintdesk/internal/features/users/middleware"
	users_services "sprintdesk/internal/features/users/services"
	cache_utils "sprintdesk/internal/util/cache"
	env_utils "sprintdesk/internal/util/env"
	"sprintdesk/internal/util/logger"
	_ "sprintdesk/swagger" // swagger docs

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title SprintDesk Backend API
// @version 1.0
// @description API for SprintDesk
// @termsOfService http://swagger.io/terms/

// @host localhost:4005
// @BasePath /api/v1
// @schemes http
func main() {
	log := logger.GetLogger()
	config.StartListeningForShutdownSignal()
	setUpDependencies()

	cache_utils.TestCacheConnection()

	runMigrations(log)

	err := users_services.GetUserService().CreateInitialAdmin()
	if err != nil {
		log.Error("Failed to create initial admin", "error", err)
		os.Exit(1)
	}

	handlePasswordReset(log)

	go generateSwaggerDocs(log)

	gin.SetMode(gin.ReleaseMode)
	ginApp := gin.Default()

	// Add GZIP compression middleware
	ginApp.Use(gzip.Gzip(
		gzip.DefaultCompression,
		// Don't compress already compressed files
		gzip.WithExcludedExtensions(
			[]string{".png", ".gif", ".jpeg", ".jpg", ".ico", ".svg", ".pdf", ".mp4"},
		),
	))

	enableCors(ginApp)
	setUpRoutes(ginApp)
	runBackgroundTasks(log)
	mountFrontend(ginApp)

	startServerWithGracefulShutdown(log, ginApp)
}

func startServerWithGracefulShutdown(log *slog.Logger, app *gin.Engine) {
	host := ""
	if config.GetEnv().EnvMode == env_utils.EnvModeDevelopment {
		// for dev we use localhost to avoid firewall
		// requests on each run for Windows
		host = "127.0.0.1"
	}

	srv := &http.Server{
		Addr:    host + ":4005",
		Handler: app,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen:", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown signal received")

	reminders.GetReminderBackgroundService().Stop()

	// The context is used to inform the server it has 10 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown:", "error", err)
	}

	log.Info("Server gracefully stopped")
}

func setUpRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	// Mount Swagger UI
	v1.GET("/docs/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes (only user auth routes should be public)
	userController := users_controllers.GetUserController()
	userController.RegisterRoutes(v1)
	system_healthcheck.GetHealthcheckController().RegisterRoutes(v1)

	// Setup auth middleware
	userService := users_services.GetUserService()
	authMiddleware := users_middleware.AuthMiddleware(userService)

	// Protected routes
	protected := v1.Group("")
	protected.Use(authMiddleware)

	userController.RegisterProtectedRoutes(protected)
	users_controllers.GetManagementController().RegisterRoutes(protected)
	audit_logs.GetAuditLogController().RegisterRoutes(protected)
	teams_controllers.GetTeamController().RegisterRoutes(protected)
	teams_controllers.GetMembershipController().RegisterRoutes(protected)
	notifications_controllers.GetNotificationController().RegisterRoutes(protected)

	// Everything below is scoped to a team the actor is an active member of
	teamRoutes := protected.Group("/teams/:teamId")
	teamRoutes.Use(teams_middleware.ResolveTeamContext(teams_services.GetTeamService()))

	projects_controllers.GetProjectController().RegisterRoutes(teamRoutes)
	projects_controllers.GetMembershipController().RegisterRoutes(teamRoutes)
	tasks_controllers.GetTaskController().RegisterRoutes(teamRoutes)
	sprints_controllers.GetSprintController().RegisterRoutes(teamRoutes)
	bandwidth.GetBandwidthController().RegisterRoutes(teamRoutes)
	analytics.GetAnalyticsController().RegisterRoutes(teamRoutes)
}

func setUpDependencies() {
	audit_logs.SetupDependencies()
	sprints_services.SetupDependencies()

	// Projects cascade first so tasks and sprints are gone before
	// bandwidth reports and notifications are cleared.
	teamService := teams_services.GetTeamService()
	teamService.AddTeamDeletionListener(projects_services.GetProjectService())
	teamService.AddTeamDeletionListener(bandwidth.GetBandwidthService())
	teamService.AddTeamDeletionListener(notifications.GetNotificationService())
}

func runBackgroundTasks(log *slog.Logger) {
	log.Info("Preparing to run background tasks...")

	reminders.GetReminderBackgroundService().StartWorkers()

	log.Info("Background tasks started successfully")
}

// Keep in mind: docs appear after second launch, because Swagger
// is generated into Go files. So if we changed files, we generate
// new docs, but still need to restart the server to see them.
func generateSwaggerDocs(log *slog.Logger) {
	if config.GetEnv().EnvMode == env_utils.EnvModeProduction {
		return
	}

	// Run swag from the current directory instead of parent
	// Use the current directory as the base for swag init
	// This ensures swag can find the files regardless of where the command is run from
	currentDir, err := os.Getwd()
	if err != nil {
		log.Error("Failed to get current directory", "error", err)
		return
	}

	cmd := exec.Command("swag", "init", "-d", currentDir, "-g", "cmd/main.go", "-o", "swagger")

	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Error("Failed to generate Swagger docs", "error", err, "output", string(output))
		return
	}

	log.Info("Swagger documentation generated successfully")
}

func runMigrations(log *slog.Logger) {
	log.Info("Running database migrations...")

	cmd := exec.Command("goose", "up")
	cmd.Env = append(
		os.Environ(),
		"GOOSE_DRIVER=postgres",
		"GOOSE_DBSTRING="+config.GetEnv().DatabaseDsn,
	)

	cmd.Dir = config.GetEnv().BackendRootPath

	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Error("Failed to run migrations", "error", err, "output", string(output))
		os.Exit(1)
	}

	log.Info("Database migrations completed successfully", "output", string(output))
}

func enableCors(ginApp *gin.Engine) {
	if config.GetEnv().EnvMode == env_utils.EnvModeDevelopment {
		// Setup CORS
		ginApp.Use(cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
			AllowHeaders: []string{
				"Origin",
				"Content-Length",
				"Content-Type",
				"Authorization",
				"Accept",
				"Accept-Language",
				"Accept-Encoding",
				"Access-Control-Request-Method",
				"Access-Control-Request-Headers",
				"Access-Control-Allow-Methods",
				"Access-Control-Allow-Headers",
				"Access-Control-Allow-Origin",
			},
			AllowCredentials: true,
		}))
	}
}

func mountFrontend(ginApp *gin.Engine) {
	staticDir := "./ui/build"
	ginApp.NoRoute(func(c *gin.Context) {
		path := filepath.Join(staticDir, c.Request.URL.Path)

		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			c.File(path)
			return
		}

		c.File(filepath.Join(staticDir, "index.html"))
	})
}

func handlePasswordReset(log *slog.Logger) {
	// Handle password reset if flag is provided
	newPassword := flag.String("new-password", "", "Set a new password for the user")
	email := flag.String("email", "", "Email of the user to reset password")

	flag.Parse()

	if *newPassword == "" {
		return
	}

	log.Info("Found reset password command - reseting password...")

	if *email == "" {
		log.Info("No email provided, please provide an email via --email=\"some@email.com\" flag")
		os.Exit(1)
	}

	resetPassword(*email, *newPassword, log)
}

func resetPassword(email string, newPassword string, log *slog.Logger) {
	log.Info("Resetting password...")

	userService := users_services.GetUserService()
	err := userService.ChangeUserPasswordByEmail(email, newPassword)
	if err != nil {
		log.Error("Failed to reset password", "error", err)
		os.Exit(1)
	}

	log.Info("Password reset successfully")
	os.Exit(0)
}
