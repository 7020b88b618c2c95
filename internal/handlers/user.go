package handlers

import (
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/mtl/myhackx-api/internal/middleware"
	"github.com/mtl/myhackx-api/pkg/dto"
)

type UserHandler struct {
	userService UserServiceInterface
}

func NewUserHandler(userService UserServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetMe(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.Unauthorized("not authenticated")
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.NotFound("user not found")
		return
	}

	_ = c.JSON(200, dto.NewUserResponse(user))
}

func (h *UserHandler) UpdateMe(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, req.DisplayName, req.PhotoURL, req.Bio, req.Skills)
	if err != nil {
		c.InternalServerError("failed to update user")
		return
	}

	_ = c.JSON(200, dto.NewUserResponse(user))
}

func (h *UserHandler) GetUser(c *drift.Context) {
	user, err := h.userService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.NotFound("user not found")
		return
	}

	_ = c.JSON(200, dto.NewUserResponse(user))
}

// ListUsers is admin only.
func (h *UserHandler) ListUsers(c *drift.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		c.InternalServerError("failed to list users")
		return
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, dto.NewUserResponse(&users[i]))
	}
	_ = c.JSON(200, resp)
}

// SetAdmin is admin only.
func (h *UserHandler) SetAdmin(c *drift.Context) {
	var req struct {
		Admin bool `json:"admin"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	user, err := h.userService.SetAdmin(c.Request.Context(), c.Param("id"), req.Admin)
	if err != nil {
		c.NotFound("user not found")
		return
	}

	_ = c.JSON(200, dto.NewUserResponse(user))
}

// DeleteUser is admin only.
func (h *UserHandler) DeleteUser(c *drift.Context) {
	if err := h.userService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.NotFound("user not found")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "user deleted"})
}
