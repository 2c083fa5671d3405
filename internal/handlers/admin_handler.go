package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"livescore/internal/services"
)

type AdminHandler struct {
	users services.UserService
}

func NewAdminHandler(users services.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

// @Summary      List users
// @Description  Full user rows for the admin panel
// @Tags         Admin
// @Produce      json
// @Success      200  {array}   models.AdminUserRow
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers()
	if err != nil {
		respondError(c, "admin/users", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// @Summary      Force-reset a user's password
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id  path      int  true  "User ID"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/users/{id}/reset-password [post]
func (h *AdminHandler) ResetPassword(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	var req struct {
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.NewPassword) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 6 characters"})
		return
	}

	if err := h.users.AdminResetPassword(userID, req.NewPassword); err != nil {
		respondError(c, "admin/reset-password", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
