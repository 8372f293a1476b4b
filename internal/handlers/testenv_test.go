package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/olgakuzina/task-manager/internal/constants"
	"github.com/olgakuzina/task-manager/internal/database"
	"github.com/olgakuzina/task-manager/internal/middleware"
	"github.com/olgakuzina/task-manager/internal/models"
	"github.com/olgakuzina/task-manager/internal/repository"
	"github.com/olgakuzina/task-manager/internal/services"
	"github.com/olgakuzina/task-manager/web"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db            *gorm.DB
	authService   *services.AuthService
	userService   *services.UserService
	statusService *services.StatusService
	labelService  *services.LabelService
	taskService   *services.TaskService

	authHandler   *AuthHandler
	userHandler   *UserHandler
	statusHandler *StatusHandler
	labelHandler  *LabelHandler
	taskHandler   *TaskHandler
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Status{},
		&models.Label{},
		&models.Task{},
		&models.TaskLabel{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	statusRepo := repository.NewStatusRepository(db)
	labelRepo := repository.NewLabelRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	env := &testEnv{
		db:            db,
		authService:   services.NewAuthService(userRepo),
		userService:   services.NewUserService(userRepo),
		statusService: services.NewStatusService(statusRepo),
		labelService:  services.NewLabelService(labelRepo),
		taskService:   services.NewTaskService(taskRepo, statusRepo, userRepo, labelRepo),
	}
	env.authHandler = NewAuthHandler(env.authService)
	env.userHandler = NewUserHandler(env.userService)
	env.statusHandler = NewStatusHandler(env.statusService)
	env.labelHandler = NewLabelHandler(env.labelService)
	env.taskHandler = NewTaskHandler(env.taskService, env.statusService, env.labelService, env.userService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return env
}

// router mounts the full route table. With an actor the guarded groups run
// as that user; without one they run behind the real auth middleware.
func (env *testEnv) router(actor *models.User) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(web.Templates())

	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	guard := middleware.RequireAuth()
	if actor != nil {
		guard = authAs(actor.ID)
	}

	r.GET("/", Index)
	r.GET("/login", env.authHandler.LoginForm)
	r.POST("/login", env.authHandler.Login)
	r.POST("/logout", env.authHandler.Logout)

	users := r.Group("/users")
	{
		users.GET("", env.userHandler.List)
		users.GET("/create", env.userHandler.RegisterForm)
		users.POST("/create", env.userHandler.Register)
		users.GET("/:id/update", guard, env.userHandler.UpdateForm)
		users.POST("/:id/update", guard, env.userHandler.Update)
		users.GET("/:id/delete", guard, env.userHandler.DeleteForm)
		users.POST("/:id/delete", guard, env.userHandler.Delete)
	}

	statuses := r.Group("/statuses")
	statuses.Use(guard)
	{
		statuses.GET("", env.statusHandler.List)
		statuses.GET("/create", env.statusHandler.CreateForm)
		statuses.POST("/create", env.statusHandler.Create)
		statuses.GET("/:id/update", env.statusHandler.UpdateForm)
		statuses.POST("/:id/update", env.statusHandler.Update)
		statuses.GET("/:id/delete", env.statusHandler.DeleteForm)
		statuses.POST("/:id/delete", env.statusHandler.Delete)
	}

	labels := r.Group("/labels")
	labels.Use(guard)
	{
		labels.GET("", env.labelHandler.List)
		labels.GET("/create", env.labelHandler.CreateForm)
		labels.POST("/create", env.labelHandler.Create)
		labels.GET("/:id/update", env.labelHandler.UpdateForm)
		labels.POST("/:id/update", env.labelHandler.Update)
		labels.GET("/:id/delete", env.labelHandler.DeleteForm)
		labels.POST("/:id/delete", env.labelHandler.Delete)
	}

	tasks := r.Group("/tasks")
	tasks.Use(guard)
	{
		tasks.GET("", env.taskHandler.List)
		tasks.GET("/create", env.taskHandler.CreateForm)
		tasks.POST("/create", env.taskHandler.Create)
		tasks.GET("/:id", env.taskHandler.Detail)
		tasks.GET("/:id/update", env.taskHandler.UpdateForm)
		tasks.POST("/:id/update", env.taskHandler.Update)
		tasks.GET("/:id/delete", env.taskHandler.DeleteForm)
		tasks.POST("/:id/delete", env.taskHandler.Delete)
	}

	return r
}

// authAs stamps the session and context with a fixed user id, standing in
// for a logged-in session.
func authAs(userID uint64) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(constants.ContextKeyUserID, userID)
		_ = session.Save()
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

func (env *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := env.userService.Register(services.RegisterInput{
		FirstName:            "Test",
		LastName:             "Tester",
		Username:             username,
		Password:             "secret",
		PasswordConfirmation: "secret",
	})
	require.NoError(t, err)
	return user
}

func (env *testEnv) createStatus(t *testing.T, name string) *models.Status {
	t.Helper()
	status, err := env.statusService.Create(name)
	require.NoError(t, err)
	return status
}

func (env *testEnv) createLabel(t *testing.T, name string) *models.Label {
	t.Helper()
	label, err := env.labelService.Create(name)
	require.NoError(t, err)
	return label
}

func (env *testEnv) createTask(t *testing.T, owner *models.User, name string, statusID, executorID uint64, labelIDs ...uint64) *models.Task {
	t.Helper()
	task, err := env.taskService.Create(owner.ID, services.TaskInput{
		Name:        name,
		Description: "test task",
		StatusID:    statusID,
		ExecutorID:  executorID,
		LabelIDs:    labelIDs,
	})
	require.NoError(t, err)
	return task
}

func postForm(r http.Handler, path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func (env *testEnv) countRows(t *testing.T, model any) int64 {
	t.Helper()
	var count int64
	require.NoError(t, env.db.Model(model).Count(&count).Error)
	return count
}
