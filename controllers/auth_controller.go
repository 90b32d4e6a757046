package controllers

import (
	"net/http"

	"editorial/config"
	"editorial/middleware"
	"editorial/models"
	"editorial/services"
	"editorial/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthController struct {
	authService *services.AuthService
	secure      bool
}

func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	return &AuthController{
		authService: services.NewAuthService(db, cfg.JWTSecret),
		secure:      cfg.IsProduction(),
	}
}

// AuthService exposes the token check used by middleware.AdminRequired.
func (ac *AuthController) AuthService() *services.AuthService {
	return ac.authService
}

type adminSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func summarize(admin *models.Admin) adminSummary {
	return adminSummary{ID: admin.ID, Email: admin.Email, Name: admin.Name}
}

// Login godoc
// @Summary Admin login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /admin/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindLooseJSON(c, &req) {
		return
	}

	admin, token, err := ac.authService.Login(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}

	ac.setSessionCookie(c, token, int(utils.AdminTokenTTL.Seconds()))
	c.JSON(http.StatusOK, gin.H{
		"message": "Login success",
		"admin":   summarize(admin),
	})
}

// Logout godoc
// @Summary Clear the admin session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /admin/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	ac.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Me godoc
// @Summary Current admin
// @Tags auth
// @Security CookieAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /admin/me [get]
func (ac *AuthController) Me(c *gin.Context) {
	admin, err := ac.authService.GetAdmin(c.Request.Context(), middleware.AdminIDFromContext(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"admin": summarize(admin)})
}

func (ac *AuthController) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.AdminCookieName, value, maxAge, "/", "", ac.secure, true)
}
