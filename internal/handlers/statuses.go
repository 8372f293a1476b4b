package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/olgakuzina/task-manager/internal/dto"
	apperrors "github.com/olgakuzina/task-manager/internal/errors"
	"github.com/olgakuzina/task-manager/internal/flash"
	"github.com/olgakuzina/task-manager/internal/services"
)

// StatusHandler serves the task status pages.
type StatusHandler struct {
	statusService *services.StatusService
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(statusService *services.StatusService) *StatusHandler {
	return &StatusHandler{
		statusService: statusService,
	}
}

// List shows all statuses.
func (h *StatusHandler) List(c *gin.Context) {
	statuses, err := h.statusService.List()
	if err != nil {
		serverError(c)
		return
	}

	render(c, http.StatusOK, "status_list.html", gin.H{
		"statuses": dto.ToStatusDTOs(statuses),
	})
}

// CreateForm renders the empty create form.
func (h *StatusHandler) CreateForm(c *gin.Context) {
	h.renderForm(c, dto.NameForm{}, nil, "Create status", "/statuses/create", "Create")
}

// Create validates and persists a new status.
func (h *StatusHandler) Create(c *gin.Context) {
	var form dto.NameForm
	_ = c.ShouldBind(&form)

	if _, err := h.statusService.Create(form.Name); err != nil {
		if verr, ok := apperrors.AsValidation(err); ok {
			h.renderForm(c, form, verr.Fields, "Create status", "/statuses/create", "Create")
			return
		}
		serverError(c)
		return
	}

	flash.Success(c, "The status was created successfully")
	c.Redirect(http.StatusFound, "/statuses")
}

// UpdateForm renders the edit form prefilled with the current name.
func (h *StatusHandler) UpdateForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	status, err := h.statusService.Get(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	form := dto.NameForm{Name: status.Name}
	h.renderForm(c, form, nil, "Edit status", fmt.Sprintf("/statuses/%d/update", id), "Edit")
}

// Update validates and updates an existing status.
func (h *StatusHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var form dto.NameForm
	_ = c.ShouldBind(&form)

	if _, err := h.statusService.Update(id, form.Name); err != nil {
		if verr, ok := apperrors.AsValidation(err); ok {
			h.renderForm(c, form, verr.Fields, "Edit status", fmt.Sprintf("/statuses/%d/update", id), "Edit")
			return
		}
		h.respondError(c, err)
		return
	}

	flash.Success(c, "The status was updated successfully")
	c.Redirect(http.StatusFound, "/statuses")
}

// DeleteForm renders the delete confirmation page.
func (h *StatusHandler) DeleteForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	status, err := h.statusService.Get(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	render(c, http.StatusOK, "delete_confirm.html", gin.H{
		"formTitle":  "Delete status",
		"objectName": status.Name,
		"formAction": fmt.Sprintf("/statuses/%d/delete", id),
	})
}

// Delete removes a status unless it is still referenced by a task.
func (h *StatusHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.statusService.Delete(id); err != nil {
		if errors.Is(err, apperrors.ErrInUse) {
			flash.Error(c, "Cannot delete status because it is in use.")
			c.Redirect(http.StatusFound, "/statuses")
			return
		}
		h.respondError(c, err)
		return
	}

	flash.Success(c, "The status was deleted successfully")
	c.Redirect(http.StatusFound, "/statuses")
}

func (h *StatusHandler) renderForm(c *gin.Context, form dto.NameForm, fieldErrors apperrors.FieldErrors, title, action, submit string) {
	if fieldErrors == nil {
		fieldErrors = apperrors.FieldErrors{}
	}
	render(c, http.StatusOK, "status_form.html", gin.H{
		"form":        form,
		"errors":      fieldErrors,
		"formTitle":   title,
		"formAction":  action,
		"submitLabel": submit,
	})
}

func (h *StatusHandler) respondError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrStatusNotFound) {
		notFound(c)
		return
	}
	serverError(c)
}
