package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/olgakuzina/task-manager/internal/constants"
	"github.com/olgakuzina/task-manager/internal/dto"
	"github.com/olgakuzina/task-manager/internal/flash"
	"github.com/olgakuzina/task-manager/internal/services"
)

// AuthHandler coordinates the login and logout pages.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// LoginForm renders the login page.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{
		"form": dto.LoginForm{},
	})
}

// Login verifies the submitted credentials and establishes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderLoginError(c, "Incorrect username or password.", form)
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Username: form.Username,
		Password: form.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			h.renderLoginError(c, "Incorrect username or password.", form)
		case errors.Is(err, services.ErrAccountDisabled):
			h.renderLoginError(c, "The account has been deactivated.", form)
		default:
			serverError(c)
		}
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		serverError(c)
		return
	}

	flash.Success(c, "You are logged in")
	c.Redirect(http.StatusFound, "/")
}

// Logout tears down the session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		serverError(c)
		return
	}

	flash.Info(c, "You are logged out")
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) renderLoginError(c *gin.Context, message string, form dto.LoginForm) {
	form.Password = ""
	render(c, http.StatusOK, "login.html", gin.H{
		"form":      form,
		"formError": message,
	})
}
