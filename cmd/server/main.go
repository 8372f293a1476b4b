package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/olgakuzina/task-manager/internal/config"
	"github.com/olgakuzina/task-manager/internal/constants"
	"github.com/olgakuzina/task-manager/internal/database"
	"github.com/olgakuzina/task-manager/internal/handlers"
	"github.com/olgakuzina/task-manager/internal/middleware"
	"github.com/olgakuzina/task-manager/internal/repository"
	"github.com/olgakuzina/task-manager/internal/services"
	"github.com/olgakuzina/task-manager/web"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()
	r.SetHTMLTemplate(web.Templates())

	// Session store: redis when configured, otherwise cookies
	store, err := sessionStore(cfg)
	if err != nil {
		log.Fatalf("Failed to create session store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	statusRepo := repository.NewStatusRepository(db)
	labelRepo := repository.NewLabelRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	statusService := services.NewStatusService(statusRepo)
	labelService := services.NewLabelService(labelRepo)
	taskService := services.NewTaskService(taskRepo, statusRepo, userRepo, labelRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	statusHandler := handlers.NewStatusHandler(statusService)
	labelHandler := handlers.NewLabelHandler(labelService)
	taskHandler := handlers.NewTaskHandler(taskService, statusService, labelService, userService)

	// Routes
	r.GET("/", handlers.Index)
	r.GET("/login", authHandler.LoginForm)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)

	// User directory is public; registration is unauthenticated
	users := r.Group("/users")
	{
		users.GET("", userHandler.List)
		users.GET("/create", userHandler.RegisterForm)
		users.POST("/create", userHandler.Register)
		users.GET("/:id/update", middleware.RequireAuth(), userHandler.UpdateForm)
		users.POST("/:id/update", middleware.RequireAuth(), userHandler.Update)
		users.GET("/:id/delete", middleware.RequireAuth(), userHandler.DeleteForm)
		users.POST("/:id/delete", middleware.RequireAuth(), userHandler.Delete)
	}

	statuses := r.Group("/statuses")
	statuses.Use(middleware.RequireAuth())
	{
		statuses.GET("", statusHandler.List)
		statuses.GET("/create", statusHandler.CreateForm)
		statuses.POST("/create", statusHandler.Create)
		statuses.GET("/:id/update", statusHandler.UpdateForm)
		statuses.POST("/:id/update", statusHandler.Update)
		statuses.GET("/:id/delete", statusHandler.DeleteForm)
		statuses.POST("/:id/delete", statusHandler.Delete)
	}

	labels := r.Group("/labels")
	labels.Use(middleware.RequireAuth())
	{
		labels.GET("", labelHandler.List)
		labels.GET("/create", labelHandler.CreateForm)
		labels.POST("/create", labelHandler.Create)
		labels.GET("/:id/update", labelHandler.UpdateForm)
		labels.POST("/:id/update", labelHandler.Update)
		labels.GET("/:id/delete", labelHandler.DeleteForm)
		labels.POST("/:id/delete", labelHandler.Delete)
	}

	tasks := r.Group("/tasks")
	tasks.Use(middleware.RequireAuth())
	{
		tasks.GET("", taskHandler.List)
		tasks.GET("/create", taskHandler.CreateForm)
		tasks.POST("/create", taskHandler.Create)
		tasks.GET("/:id", taskHandler.Detail)
		tasks.GET("/:id/update", taskHandler.UpdateForm)
		tasks.POST("/:id/update", taskHandler.Update)
		tasks.GET("/:id/delete", taskHandler.DeleteForm)
		tasks.POST("/:id/delete", taskHandler.Delete)
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func sessionStore(cfg *config.Config) (sessions.Store, error) {
	if cfg.RedisHost == "" {
		return cookie.NewStore([]byte(cfg.SessionSecret)), nil
	}

	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	return redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret),
	)
}
