package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/olgakuzina/task-manager/internal/dto"
	apperrors "github.com/olgakuzina/task-manager/internal/errors"
	"github.com/olgakuzina/task-manager/internal/flash"
	"github.com/olgakuzina/task-manager/internal/middleware"
	"github.com/olgakuzina/task-manager/internal/services"
	"github.com/olgakuzina/task-manager/internal/utils"
)

// TaskHandler serves the task pages.
type TaskHandler struct {
	taskService   *services.TaskService
	statusService *services.StatusService
	labelService  *services.LabelService
	userService   *services.UserService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(
	taskService *services.TaskService,
	statusService *services.StatusService,
	labelService *services.LabelService,
	userService *services.UserService,
) *TaskHandler {
	return &TaskHandler{
		taskService:   taskService,
		statusService: statusService,
		labelService:  labelService,
		userService:   userService,
	}
}

// taskFilterView carries the active filters back into the template so the
// selects keep their state.
type taskFilterView struct {
	StatusID    uint64
	ExecutorID  uint64
	LabelID     uint64
	MyTasksOnly bool
}

// List shows tasks, filtered by status, executor, label and ownership.
func (h *TaskHandler) List(c *gin.Context) {
	actorID, _ := middleware.GetUserID(c)
	params := utils.GetPaginationParams(c)

	input := services.ListTasksInput{
		ActorID:    actorID,
		Pagination: params,
	}
	var view taskFilterView

	if id, ok := queryID(c, "status"); ok {
		input.StatusID = &id
		view.StatusID = id
	}
	if id, ok := queryID(c, "executor"); ok {
		input.ExecutorID = &id
		view.ExecutorID = id
	}
	if id, ok := queryID(c, "labels"); ok {
		input.LabelID = &id
		view.LabelID = id
	}
	if isChecked(c.Query("my_tasks")) {
		input.MyTasksOnly = true
		view.MyTasksOnly = true
	}

	tasks, total, err := h.taskService.List(input)
	if err != nil {
		serverError(c)
		return
	}

	selects, err := h.loadSelects()
	if err != nil {
		serverError(c)
		return
	}

	render(c, http.StatusOK, "task_list.html", gin.H{
		"tasks":     dto.ToTaskDTOs(tasks),
		"filter":    view,
		"pager":     buildPager(c, params, total),
		"statuses":  selects.statuses,
		"executors": selects.users,
		"labels":    selects.labels,
	})
}

// pagerView carries the list total and the page links. Empty URLs mean no
// page in that direction.
type pagerView struct {
	Total   int64
	Page    int
	PrevURL string
	NextURL string
}

func buildPager(c *gin.Context, params utils.PaginationParams, total int64) pagerView {
	pager := pagerView{Total: total, Page: params.Page}
	if params.Page > 1 {
		pager.PrevURL = pageURL(c, params.Page-1)
	}
	if int64(params.Page*params.Limit) < total {
		pager.NextURL = pageURL(c, params.Page+1)
	}
	return pager
}

// pageURL rebuilds the list URL for another page, keeping the active
// filters.
func pageURL(c *gin.Context, page int) string {
	query := c.Request.URL.Query()
	query.Set("page", strconv.Itoa(page))
	return c.Request.URL.Path + "?" + query.Encode()
}

// Detail shows a single task with its references resolved.
func (h *TaskHandler) Detail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	task, err := h.taskService.Get(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	render(c, http.StatusOK, "task_detail.html", gin.H{
		"task": dto.ToTaskDTO(*task),
	})
}

// CreateForm renders the empty task form.
func (h *TaskHandler) CreateForm(c *gin.Context) {
	h.renderForm(c, dto.TaskForm{}, nil, "Create task", "/tasks/create", "Create")
}

// Create validates the submission and persists a task owned by the acting
// user.
func (h *TaskHandler) Create(c *gin.Context) {
	actorID, _ := middleware.GetUserID(c)

	var form dto.TaskForm
	_ = c.ShouldBind(&form)

	_, err := h.taskService.Create(actorID, services.TaskInput{
		Name:        form.Name,
		Description: form.Description,
		StatusID:    form.StatusID,
		ExecutorID:  form.ExecutorID,
		LabelIDs:    form.LabelIDs,
	})
	if err != nil {
		if verr, ok := apperrors.AsValidation(err); ok {
			h.renderForm(c, form, verr.Fields, "Create task", "/tasks/create", "Create")
			return
		}
		serverError(c)
		return
	}

	flash.Success(c, "Task created successfully")
	c.Redirect(http.StatusFound, "/tasks")
}

// UpdateForm renders the edit form prefilled from the stored task.
func (h *TaskHandler) UpdateForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	task, err := h.taskService.Get(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	form := dto.TaskForm{
		Name:        task.Name,
		Description: task.Description,
		StatusID:    task.StatusID,
		ExecutorID:  task.ExecutorID,
		LabelIDs:    dto.LabelIDs(*task),
	}
	h.renderForm(c, form, nil, "Edit task", fmt.Sprintf("/tasks/%d/update", id), "Edit")
}

// Update validates the submission and updates the task. The owner set at
// creation is never touched.
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var form dto.TaskForm
	_ = c.ShouldBind(&form)

	_, err := h.taskService.Update(id, services.TaskInput{
		Name:        form.Name,
		Description: form.Description,
		StatusID:    form.StatusID,
		ExecutorID:  form.ExecutorID,
		LabelIDs:    form.LabelIDs,
	})
	if err != nil {
		if verr, ok := apperrors.AsValidation(err); ok {
			h.renderForm(c, form, verr.Fields, "Edit task", fmt.Sprintf("/tasks/%d/update", id), "Edit")
			return
		}
		h.respondError(c, err)
		return
	}

	flash.Success(c, "Task updated successfully")
	c.Redirect(http.StatusFound, "/tasks")
}

// DeleteForm renders the delete confirmation page for the task owner.
func (h *TaskHandler) DeleteForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actorID, _ := middleware.GetUserID(c)

	task, err := h.taskService.Get(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if task.OwnerID != actorID {
		flash.Error(c, "A task can only be deleted by its author")
		c.Redirect(http.StatusFound, "/tasks")
		return
	}

	render(c, http.StatusOK, "delete_confirm.html", gin.H{
		"formTitle":  "Delete task",
		"objectName": task.Name,
		"formAction": fmt.Sprintf("/tasks/%d/delete", id),
	})
}

// Delete removes a task if the acting user owns it.
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actorID, _ := middleware.GetUserID(c)

	if err := h.taskService.Delete(actorID, id); err != nil {
		if errors.Is(err, services.ErrNotTaskOwner) {
			flash.Error(c, "A task can only be deleted by its author")
			c.Redirect(http.StatusFound, "/tasks")
			return
		}
		h.respondError(c, err)
		return
	}

	flash.Success(c, "Task successfully deleted")
	c.Redirect(http.StatusFound, "/tasks")
}

type taskSelects struct {
	statuses []dto.StatusDTO
	users    []dto.UserDTO
	labels   []dto.LabelDTO
}

func (h *TaskHandler) loadSelects() (taskSelects, error) {
	statuses, err := h.statusService.List()
	if err != nil {
		return taskSelects{}, err
	}
	users, err := h.userService.List()
	if err != nil {
		return taskSelects{}, err
	}
	labels, err := h.labelService.List()
	if err != nil {
		return taskSelects{}, err
	}
	return taskSelects{
		statuses: dto.ToStatusDTOs(statuses),
		users:    dto.ToUserDTOs(users),
		labels:   dto.ToLabelDTOs(labels),
	}, nil
}

func (h *TaskHandler) renderForm(c *gin.Context, form dto.TaskForm, fieldErrors apperrors.FieldErrors, title, action, submit string) {
	if fieldErrors == nil {
		fieldErrors = apperrors.FieldErrors{}
	}

	selects, err := h.loadSelects()
	if err != nil {
		serverError(c)
		return
	}

	render(c, http.StatusOK, "task_form.html", gin.H{
		"form":        form,
		"errors":      fieldErrors,
		"formTitle":   title,
		"formAction":  action,
		"submitLabel": submit,
		"statuses":    selects.statuses,
		"executors":   selects.users,
		"labels":      selects.labels,
	})
}

func (h *TaskHandler) respondError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrTaskNotFound) {
		notFound(c)
		return
	}
	serverError(c)
}

// queryID parses an optional numeric query filter; empty or malformed
// values mean "no filter".
func queryID(c *gin.Context, name string) (uint64, bool) {
	value := c.Query(name)
	if value == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// isChecked interprets an HTML checkbox query value.
func isChecked(value string) bool {
	switch value {
	case "on", "true", "1":
		return true
	default:
		return false
	}
}
