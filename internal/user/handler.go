package user

import (
	"net/mail"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

type Handler struct {
	service       *Service
	jwtSecret     string
	adminEmail    string
	adminPassword string
}

func NewHandler(service *Service, jwtSecret, adminEmail, adminPassword string) *Handler {
	return &Handler{
		service:       service,
		jwtSecret:     jwtSecret,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
	}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/user/register", h.register)
	app.Post("/api/user/login", h.login)
	app.Post("/api/user/admin", h.adminLogin)
	app.Post("/api/user/forgot-password", h.forgotPassword)
	app.Post("/api/user/reset-password", h.resetPassword)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/user/profile", h.profile)
	app.Post("/api/user/profile/update", h.updateProfile)
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App, adminOnly fiber.Handler) {
	app.Get("/api/user/all", adminOnly, h.listUsers)
	app.Post("/api/user/toggle-block", adminOnly, h.toggleBlock)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(registerRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	if _, err := mail.ParseAddress(payload.Email); err != nil {
		return fail(c, "Please enter a valid email")
	}
	if len(payload.Password) < 8 {
		return fail(c, "Please enter a strong password")
	}

	now := time.Now().UTC().Format(time.RFC3339)
	created, err := h.service.Register(User{
		Name:      payload.Name,
		Email:     payload.Email,
		Password:  payload.Password,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if err == ErrEmailExists {
			return fail(c, "User already exists")
		}
		return fail(c, err.Error())
	}

	token, err := h.signUserToken(created)
	if err != nil {
		return fail(c, "failed to generate token")
	}
	return c.JSON(fiber.Map{"success": true, "token": token})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}

	u, err := h.service.Authenticate(payload.Email, payload.Password)
	if err != nil {
		switch err {
		case ErrBlocked:
			return fail(c, "Your account has been blocked")
		default:
			return fail(c, "Invalid credentials")
		}
	}

	token, err := h.signUserToken(u)
	if err != nil {
		return fail(c, "failed to generate token")
	}
	return c.JSON(fiber.Map{"success": true, "token": token})
}

// adminLogin checks the credentials against the configured admin account
// rather than the users table. The issued token carries an admin claim
// which AdminRequired checks on every admin route.
func (h *Handler) adminLogin(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	if h.adminEmail == "" || payload.Email != h.adminEmail || payload.Password != h.adminPassword {
		return fail(c, "Invalid credentials")
	}

	claims := jwt.MapClaims{
		"email": payload.Email,
		"admin": true,
		"exp":   time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		return fail(c, "failed to generate token")
	}
	return c.JSON(fiber.Map{"success": true, "token": signed})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (h *Handler) forgotPassword(c *fiber.Ctx) error {
	payload := new(forgotPasswordRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	if err := h.service.RequestPasswordReset(c.Context(), payload.Email); err != nil {
		return fail(c, err.Error())
	}
	// identical response for known and unknown addresses
	return c.JSON(fiber.Map{"success": true, "message": "If the email exists, an OTP has been sent"})
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

func (h *Handler) resetPassword(c *fiber.Ctx) error {
	payload := new(resetPasswordRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	if len(payload.NewPassword) < 8 {
		return fail(c, "Please enter a strong password")
	}
	if err := h.service.ResetPassword(c.Context(), payload.Email, payload.OTP, payload.NewPassword); err != nil {
		if err == ErrInvalidOTP {
			return fail(c, "Invalid or expired OTP")
		}
		return fail(c, err.Error())
	}
	return c.JSON(fiber.Map{"success": true, "message": "Password reset successfully"})
}

func (h *Handler) profile(c *fiber.Ctx) error {
	userID, err := GetUserIDFromCtx(c)
	if err != nil {
		return fail(c, "Not authorized")
	}
	u, err := h.service.GetByID(userID)
	if err != nil {
		return fail(c, "User not found")
	}
	return c.JSON(fiber.Map{"success": true, "user": sanitizeUser(u)})
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *Handler) updateProfile(c *fiber.Ctx) error {
	userID, err := GetUserIDFromCtx(c)
	if err != nil {
		return fail(c, "Not authorized")
	}
	payload := new(updateProfileRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	updated, err := h.service.UpdateProfile(userID, payload.Name, payload.Email)
	if err != nil {
		if err == ErrNotFound {
			return fail(c, "User not found")
		}
		return fail(c, err.Error())
	}
	return c.JSON(fiber.Map{"success": true, "user": sanitizeUser(updated)})
}

func (h *Handler) listUsers(c *fiber.Ctx) error {
	users, err := h.service.List()
	if err != nil {
		return fail(c, err.Error())
	}
	sanitized := make([]User, 0, len(users))
	for _, u := range users {
		sanitized = append(sanitized, sanitizeUser(u))
	}
	return c.JSON(fiber.Map{"success": true, "users": sanitized})
}

type toggleBlockRequest struct {
	UserID  int  `json:"userId"`
	Blocked bool `json:"blocked"`
}

func (h *Handler) toggleBlock(c *fiber.Ctx) error {
	payload := new(toggleBlockRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	if err := h.service.SetBlocked(payload.UserID, payload.Blocked); err != nil {
		if err == ErrNotFound {
			return fail(c, "User not found")
		}
		return fail(c, err.Error())
	}
	return c.JSON(fiber.Map{"success": true, "message": "User updated"})
}

func (h *Handler) signUserToken(u User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}

// AdminRequired rejects requests whose token lacks the admin claim. It runs
// after the JWT middleware, so c.Locals("user") is already populated.
func AdminRequired(c *fiber.Ctx) error {
	tok, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return fail(c, "Not authorized")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return fail(c, "Not authorized")
	}
	if admin, ok := claims["admin"].(bool); !ok || !admin {
		return fail(c, "Not authorized")
	}
	return c.Next()
}

// GetUserIDFromCtx extracts the user_id claim from the JWT token stored
// in c.Locals("user").
func GetUserIDFromCtx(c *fiber.Ctx) (int, error) {
	u := c.Locals("user")
	if u == nil {
		return 0, fiber.ErrUnauthorized
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	if raw, ok := claims["user_id"]; ok {
		switch v := raw.(type) {
		case float64:
			return int(v), nil
		case int:
			return v, nil
		case string:
			id, err := strconv.Atoi(v)
			if err != nil {
				return 0, fiber.ErrUnauthorized
			}
			return id, nil
		}
	}
	return 0, fiber.ErrUnauthorized
}

func sanitizeUser(u User) User {
	u.Password = ""
	return u
}

func fail(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"success": false, "message": message})
}
