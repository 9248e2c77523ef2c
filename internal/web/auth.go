package web

import (
	"errors"
	"net/http"
	"strings"

	"storefront-web/internal/models"
	"storefront-web/internal/render"
	"storefront-web/internal/upstream"
	"storefront-web/internal/validate"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// loginFailedMessage is deliberately generic: invalid credentials and
// unknown accounts read the same.
const loginFailedMessage = "Credenciales inválidas"

// LoginForm renders the login screen.
func (h *Handler) LoginForm(c *gin.Context) {
	st := h.loadState(c)
	if st.LoggedIn() {
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	page := render.LoginPage{Chrome: st.Chrome()}
	if c.Query("expired") != "" {
		page.Notice = "Tu sesión ha expirado. Inicia sesión nuevamente."
	}
	if c.Query("registered") != "" {
		page.Notice = "Cuenta creada. Ya puedes iniciar sesión."
	}
	c.HTML(http.StatusOK, "login", page)
}

// Login authenticates against the catalog API and stores the bearer
// token in the visitor's session. Attempts are rate limited per IP.
func (h *Handler) Login(c *gin.Context) {
	st := h.loadState(c)
	ctx := c.Request.Context()

	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	page := render.LoginPage{Chrome: st.Chrome(), Username: username}

	if !h.sessions.AllowLogin(ctx, c.ClientIP()) {
		page.Error = "Demasiados intentos. Espera un minuto e intenta de nuevo."
		c.HTML(http.StatusTooManyRequests, "login", page)
		return
	}
	if username == "" || password == "" {
		page.Error = loginFailedMessage
		c.HTML(http.StatusOK, "login", page)
		return
	}

	token, err := h.client.Login(ctx, username, password)
	if err != nil {
		var statusErr *upstream.StatusError
		switch {
		case errors.Is(err, models.ErrSessionExpired), errors.As(err, &statusErr):
			page.Error = loginFailedMessage
		default:
			h.logger.Error("Login request failed", zap.Error(err))
			page.Error = networkErrorBanner
		}
		c.HTML(http.StatusOK, "login", page)
		return
	}

	if err := h.sessions.SetToken(ctx, st.SID, token); err != nil {
		h.logger.Error("Failed to persist session token", zap.Error(err))
		page.Error = networkErrorBanner
		c.HTML(http.StatusOK, "login", page)
		return
	}
	c.Redirect(http.StatusFound, "/admin")
}

// RegisterForm renders the registration screen.
func (h *Handler) RegisterForm(c *gin.Context) {
	st := h.loadState(c)
	c.HTML(http.StatusOK, "register", render.RegisterPage{
		Chrome: st.Chrome(),
		Values: map[string]string{},
		Errors: map[string]string{},
	})
}

// Register validates the form locally, then creates the account
// upstream. Validation failures re-render with per-field messages and
// the submitted values preserved.
func (h *Handler) Register(c *gin.Context) {
	st := h.loadState(c)
	ctx := c.Request.Context()

	input := validate.RegistrationInput{
		Email:           c.PostForm("email"),
		Password:        c.PostForm("password"),
		ConfirmPassword: c.PostForm("confirm_password"),
		FirstName:       c.PostForm("first_name"),
		LastName:        c.PostForm("last_name"),
		Phone:           c.PostForm("phone"),
		Address:         c.PostForm("address"),
	}
	values := map[string]string{
		"email":      input.Email,
		"first_name": input.FirstName,
		"last_name":  input.LastName,
		"phone":      input.Phone,
		"address":    input.Address,
	}
	page := render.RegisterPage{Chrome: st.Chrome(), Values: values, Errors: map[string]string{}}

	if errs := validate.Registration(input); len(errs) > 0 {
		page.Errors = errs
		c.HTML(http.StatusOK, "register", page)
		return
	}

	if !h.sessions.AllowLogin(ctx, c.ClientIP()) {
		page.Errors["email"] = "Demasiados intentos. Espera un minuto e intenta de nuevo."
		c.HTML(http.StatusTooManyRequests, "register", page)
		return
	}

	err := h.client.Register(ctx, upstream.RegisterRequest{
		Email:     strings.TrimSpace(input.Email),
		Password:  input.Password,
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Phone:     strings.TrimSpace(input.Phone),
		Address:   strings.TrimSpace(input.Address),
	})
	if err != nil {
		var statusErr *upstream.StatusError
		if errors.As(err, &statusErr) {
			page.Errors["email"] = "No se pudo crear la cuenta. Revisa los datos ingresados."
		} else {
			h.logger.Error("Register request failed", zap.Error(err))
			page.Notice = networkErrorBanner
		}
		c.HTML(http.StatusOK, "register", page)
		return
	}
	c.Redirect(http.StatusFound, "/login?registered=1")
}

// Logout drops the stored token. Branding preferences survive.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.sessions.ClearToken(c.Request.Context(), sessionID(c)); err != nil {
		h.logger.Warn("Failed to clear token on logout", zap.Error(err))
	}
	c.Redirect(http.StatusFound, "/")
}
