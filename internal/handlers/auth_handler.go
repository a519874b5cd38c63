package handlers

import (
	"errors"

	"storefront/internal/services"
	"storefront/internal/session"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// CredentialsForm is the body of the register and login forms.
type CredentialsForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// AuthHandler handles customer accounts and the administrator login.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
	log         logrus.FieldLogger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
		log:         log,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/register", h.ShowRegister)
	router.Post("/register", h.HandleRegister)
	router.Get("/login", h.ShowLogin)
	router.Post("/login", h.HandleLogin)
	router.Get("/logout", h.HandleLogout)
	router.Get("/admin/login", h.ShowAdminLogin)
	router.Post("/admin/login", h.HandleAdminLogin)
}

func (h *AuthHandler) ShowRegister(c *fiber.Ctx) error {
	return render(c, "register", fiber.Map{"Title": "Register"})
}

func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Title": "Log in"})
}

func (h *AuthHandler) ShowAdminLogin(c *fiber.Ctx) error {
	return render(c, "admin_login", fiber.Map{"Title": "Administration"})
}

// parseCredentials binds and validates the posted username and password.
func (h *AuthHandler) parseCredentials(c *fiber.Ctx) (CredentialsForm, bool) {
	var form CredentialsForm
	if err := c.BodyParser(&form); err != nil {
		h.log.WithError(err).Debug("Error parsing credentials form")
		return form, false
	}
	if err := h.validate.Struct(form); err != nil {
		return form, false
	}
	return form, true
}

// HandleRegister creates a customer account.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	form, ok := h.parseCredentials(c)
	if !ok {
		return redirectWithError(c, "/register", "Please fill in all fields.")
	}

	user, err := h.authService.RegisterUser(form.Username, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingCredentials):
			return redirectWithError(c, "/register", "Please fill in all fields.")
		case errors.Is(err, services.ErrUsernameTaken):
			return redirectWithError(c, "/register", "This username already exists.")
		}
		h.log.WithError(err).Error("Error registering user")
		return err
	}

	h.log.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("User registered")
	return redirectWithSuccess(c, "/login", "Account created. You can now log in.")
}

// HandleLogin signs a customer in.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	form, ok := h.parseCredentials(c)
	if !ok {
		return redirectWithError(c, "/login", "Invalid credentials.")
	}

	user, err := h.authService.LoginUser(form.Username, form.Password)
	if err != nil {
		h.log.WithField("username", form.Username).Info("Customer login failed")
		return redirectWithError(c, "/login", "Invalid credentials.")
	}

	session.FromContext(c).SignIn(session.CustomerIdentity(user.ID))
	return redirectWithSuccess(c, "/", "Welcome!")
}

// HandleLogout forgets everything held in the session, cart included.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	session.FromContext(c).Clear()
	return redirect(c, "/")
}

// HandleAdminLogin signs the administrator in.
func (h *AuthHandler) HandleAdminLogin(c *fiber.Ctx) error {
	form, ok := h.parseCredentials(c)
	if !ok {
		return redirectWithError(c, "/admin/login", "Invalid administrator credentials.")
	}

	if err := h.authService.LoginAdmin(form.Username, form.Password); err != nil {
		h.log.WithField("username", form.Username).Warn("Administrator login failed")
		return redirectWithError(c, "/admin/login", "Invalid administrator credentials.")
	}

	session.FromContext(c).SignIn(session.AdminIdentity())
	return redirectWithSuccess(c, "/admin/dashboard", "Administrator login successful.")
}
