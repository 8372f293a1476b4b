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

// LabelHandler serves the label pages.
type LabelHandler struct {
	labelService *services.LabelService
}

// NewLabelHandler creates a new LabelHandler.
func NewLabelHandler(labelService *services.LabelService) *LabelHandler {
	return &LabelHandler{
		labelService: labelService,
	}
}

// List shows all labels.
func (h *LabelHandler) List(c *gin.Context) {
	labels, err := h.labelService.List()
	if err != nil {
		serverError(c)
		return
	}

	render(c, http.StatusOK, "label_list.html", gin.H{
		"labels": dto.ToLabelDTOs(labels),
	})
}

// CreateForm renders the empty create form.
func (h *LabelHandler) CreateForm(c *gin.Context) {
	h.renderForm(c, dto.NameForm{}, nil, "Create label", "/labels/create", "Create")
}

// Create validates and persists a new label.
func (h *LabelHandler) Create(c *gin.Context) {
	var form dto.NameForm
	_ = c.ShouldBind(&form)

	if _, err := h.labelService.Create(form.Name); err != nil {
		if verr, ok := apperrors.AsValidation(err); ok {
			h.renderForm(c, form, verr.Fields, "Create label", "/labels/create", "Create")
			return
		}
		serverError(c)
		return
	}

	flash.Success(c, "Label created successfully")
	c.Redirect(http.StatusFound, "/labels")
}

// UpdateForm renders the edit form prefilled with the current name.
func (h *LabelHandler) UpdateForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	label, err := h.labelService.Get(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	form := dto.NameForm{Name: label.Name}
	h.renderForm(c, form, nil, "Edit label", fmt.Sprintf("/labels/%d/update", id), "Edit")
}

// Update validates and updates an existing label.
func (h *LabelHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var form dto.NameForm
	_ = c.ShouldBind(&form)

	if _, err := h.labelService.Update(id, form.Name); err != nil {
		if verr, ok := apperrors.AsValidation(err); ok {
			h.renderForm(c, form, verr.Fields, "Edit label", fmt.Sprintf("/labels/%d/update", id), "Edit")
			return
		}
		h.respondError(c, err)
		return
	}

	flash.Success(c, "Label updated successfully")
	c.Redirect(http.StatusFound, "/labels")
}

// DeleteForm renders the delete confirmation page.
func (h *LabelHandler) DeleteForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	label, err := h.labelService.Get(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	render(c, http.StatusOK, "delete_confirm.html", gin.H{
		"formTitle":  "Delete label",
		"objectName": label.Name,
		"formAction": fmt.Sprintf("/labels/%d/delete", id),
	})
}

// Delete removes a label unless it is still attached to a task.
func (h *LabelHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.labelService.Delete(id); err != nil {
		if errors.Is(err, apperrors.ErrInUse) {
			flash.Error(c, "Label is in use and cannot be deleted.")
			c.Redirect(http.StatusFound, "/labels")
			return
		}
		h.respondError(c, err)
		return
	}

	flash.Success(c, "Label deleted successfully")
	c.Redirect(http.StatusFound, "/labels")
}

func (h *LabelHandler) renderForm(c *gin.Context, form dto.NameForm, fieldErrors apperrors.FieldErrors, title, action, submit string) {
	if fieldErrors == nil {
		fieldErrors = apperrors.FieldErrors{}
	}
	render(c, http.StatusOK, "label_form.html", gin.H{
		"form":        form,
		"errors":      fieldErrors,
		"formTitle":   title,
		"formAction":  action,
		"submitLabel": submit,
	})
}

func (h *LabelHandler) respondError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrLabelNotFound) {
		notFound(c)
		return
	}
	serverError(c)
}
