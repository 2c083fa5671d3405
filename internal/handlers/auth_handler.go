package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"livescore/internal/models"
	"livescore/internal/services"
)

type AuthHandler struct {
	users         services.UserService
	auth          services.AuthService
	verifications services.VerificationService
	resets        services.PasswordResetService
	emails        services.EmailService
}

func NewAuthHandler(users services.UserService, auth services.AuthService, verifications services.VerificationService, resets services.PasswordResetService, emails services.EmailService) *AuthHandler {
	return &AuthHandler{
		users:         users,
		auth:          auth,
		verifications: verifications,
		resets:        resets,
		emails:        emails,
	}
}

// @Summary      Register a new account
// @Description  Creates an unverified user, emails a verification link and starts a session
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        register  body      models.RegisterRequest  true  "Registration data"
// @Success      201       {object}  models.PublicUser
// @Failure      400       {object}  map[string]string
// @Failure      409       {object}  map[string]string
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing fields"})
		return
	}

	user, err := h.users.Register(req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, "auth/register", err)
		return
	}

	// Сессия выдаётся сразу, хотя аккаунт не верифицирован: логин при этом
	// заблокирован до верификации. Осознанная асимметрия исходной системы.
	token, err := h.auth.IssueToken(user)
	if err != nil {
		respondError(c, "auth/register", err)
		return
	}
	setSessionCookie(c, token)

	log.Printf("[auth][register] userID=%d email=%s", user.ID, user.Email)
	c.JSON(http.StatusCreated, user.Public())
}

// @Summary      Log in
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Credentials"
// @Success      200    {object}  models.PublicUser
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing credentials"})
		return
	}

	user, err := h.users.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, "auth/login", err)
		return
	}

	token, err := h.auth.IssueToken(user)
	if err != nil {
		respondError(c, "auth/login", err)
		return
	}
	setSessionCookie(c, token)

	log.Printf("[auth][login] success userID=%d", user.ID)
	c.JSON(http.StatusOK, user.Public())
}

// @Summary      Current user
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  models.PublicUser
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := getIntFromCtx(c, "user_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	user, err := h.users.GetUserByID(userID)
	if err != nil {
		respondError(c, "auth/me", err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user.Public())
}

// @Summary      Log out
// @Description  Clears the session cookie; the server keeps no session state
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// @Summary      Request a password reset link
// @Description  Always answers ok to avoid revealing whether the email exists
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/auth/request-reset [post]
func (h *AuthHandler) RequestReset(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	token, err := h.resets.Request(req.Email)
	if err != nil {
		respondError(c, "auth/request-reset", err)
		return
	}

	// в dev-режиме (почта не настроена) токен отдаём в ответе для тестов
	if token != "" && !h.emails.Enabled() {
		c.JSON(http.StatusOK, gin.H{"ok": true, "token": token})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// @Summary      Reset the password with a one-time token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  models.PublicUser
// @Failure      400  {object}  map[string]string
// @Router       /api/auth/reset [post]
func (h *AuthHandler) Reset(c *gin.Context) {
	var req struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing fields"})
		return
	}

	user, err := h.resets.Reset(req.Token, req.NewPassword)
	if err != nil {
		respondError(c, "auth/reset", err)
		return
	}

	token, err := h.auth.IssueToken(user)
	if err != nil {
		respondError(c, "auth/reset", err)
		return
	}
	setSessionCookie(c, token)
	c.JSON(http.StatusOK, user.Public())
}

// @Summary      Verify an email address
// @Tags         Auth
// @Produce      json
// @Param        token  query     string  true  "Verification token"
// @Success      200    {object}  map[string]bool
// @Failure      400    {object}  map[string]string
// @Router       /api/auth/verify [get]
func (h *AuthHandler) Verify(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}
	if err := h.verifications.Confirm(token); err != nil {
		respondError(c, "auth/verify", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// @Summary      Re-send the verification email
// @Description  Always answers ok; no-ops for unknown or already verified accounts
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  map[string]string
// @Router       /api/auth/verify-request [post]
func (h *AuthHandler) VerifyRequest(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}
	if err := h.verifications.Request(req.Email); err != nil {
		respondError(c, "auth/verify-request", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
