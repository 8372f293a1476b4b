package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/olgakuzina/task-manager/internal/dto"
	apperrors "github.com/olgakuzina/task-manager/internal/errors"
	"github.com/olgakuzina/task-manager/internal/flash"
	"github.com/olgakuzina/task-manager/internal/middleware"
	"github.com/olgakuzina/task-manager/internal/services"
)

const userPermissionMessage = "You do not have permission to edit this user."

// UserHandler serves the user directory, registration and profile pages.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// List shows all users. The directory is public.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List()
	if err != nil {
		serverError(c)
		return
	}

	render(c, http.StatusOK, "user_list.html", gin.H{
		"users": dto.ToUserDTOs(users),
	})
}

// RegisterForm renders the registration page.
func (h *UserHandler) RegisterForm(c *gin.Context) {
	h.renderForm(c, dto.UserForm{}, nil, "Register User", "/users/create", "Register")
}

// Register creates a new account. This is the one unauthenticated mutation.
func (h *UserHandler) Register(c *gin.Context) {
	var form dto.UserForm
	_ = c.ShouldBind(&form)

	_, err := h.userService.Register(services.RegisterInput{
		FirstName:            form.FirstName,
		LastName:             form.LastName,
		Username:             form.Username,
		Password:             form.Password,
		PasswordConfirmation: form.PasswordConfirmation,
	})
	if err != nil {
		if verr, ok := apperrors.AsValidation(err); ok {
			h.renderForm(c, form, verr.Fields, "Register User", "/users/create", "Register")
			return
		}
		serverError(c)
		return
	}

	flash.Success(c, "The user has been successfully registered")
	c.Redirect(http.StatusFound, "/login")
}

// UpdateForm renders the profile edit page for the subject user.
func (h *UserHandler) UpdateForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if !h.requireSelf(c, id) {
		return
	}

	user, err := h.userService.Get(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	form := dto.UserForm{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Username:  user.Username,
	}
	h.renderForm(c, form, nil, "Edit User", fmt.Sprintf("/users/%d/update", id), "Edit")
}

// Update edits the subject user's profile. An empty password leaves the
// credential unchanged.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actorID, _ := middleware.GetUserID(c)

	var form dto.UserForm
	_ = c.ShouldBind(&form)

	_, err := h.userService.Update(actorID, id, services.UpdateUserInput{
		FirstName:            form.FirstName,
		LastName:             form.LastName,
		Username:             form.Username,
		Password:             form.Password,
		PasswordConfirmation: form.PasswordConfirmation,
	})
	if err != nil {
		if verr, ok := apperrors.AsValidation(err); ok {
			h.renderForm(c, form, verr.Fields, "Edit User", fmt.Sprintf("/users/%d/update", id), "Edit")
			return
		}
		if errors.Is(err, apperrors.ErrPermissionDenied) {
			flash.Error(c, userPermissionMessage)
			c.Redirect(http.StatusFound, "/users")
			return
		}
		h.respondError(c, err)
		return
	}

	flash.Success(c, "Profile updated successfully!")
	c.Redirect(http.StatusFound, "/users")
}

// DeleteForm renders the delete confirmation page for the subject user.
func (h *UserHandler) DeleteForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if !h.requireSelf(c, id) {
		return
	}

	user, err := h.userService.Get(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	render(c, http.StatusOK, "delete_confirm.html", gin.H{
		"formTitle":  "Delete user",
		"objectName": user.FullName(),
		"formAction": fmt.Sprintf("/users/%d/delete", id),
	})
}

// Delete removes the subject user's account unless a task still references
// them as owner or executor.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actorID, _ := middleware.GetUserID(c)

	if err := h.userService.Delete(actorID, id); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrPermissionDenied):
			flash.Error(c, userPermissionMessage)
			c.Redirect(http.StatusFound, "/users")
		case errors.Is(err, apperrors.ErrInUse):
			flash.Error(c, "It is not possible to delete a user because it is being used")
			c.Redirect(http.StatusFound, "/users")
		default:
			h.respondError(c, err)
		}
		return
	}

	// The deleted account was the session identity; end the session.
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()

	flash.Success(c, "Profile deleted successfully!")
	c.Redirect(http.StatusFound, "/users")
}

// requireSelf redirects with a permission notice when the acting user is
// not the subject of the request.
func (h *UserHandler) requireSelf(c *gin.Context, targetID uint64) bool {
	actorID, _ := middleware.GetUserID(c)
	if actorID != targetID {
		flash.Error(c, userPermissionMessage)
		c.Redirect(http.StatusFound, "/users")
		return false
	}
	return true
}

func (h *UserHandler) renderForm(c *gin.Context, form dto.UserForm, fieldErrors apperrors.FieldErrors, title, action, submit string) {
	if fieldErrors == nil {
		fieldErrors = apperrors.FieldErrors{}
	}
	form.Password = ""
	form.PasswordConfirmation = ""
	render(c, http.StatusOK, "user_form.html", gin.H{
		"form":        form,
		"errors":      fieldErrors,
		"formTitle":   title,
		"formAction":  action,
		"submitLabel": submit,
	})
}

func (h *UserHandler) respondError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrUserNotFound) {
		notFound(c)
		return
	}
	serverError(c)
}
