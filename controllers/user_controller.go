package controllers

import (
	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Service *services.UserService
}

func NewUserController(s *services.UserService) *UserController {
	return &UserController{Service: s}
}

// GET /users (admin)
func (uc *UserController) List(c *gin.Context) {
	users, err := uc.Service.List()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, users)
}

type updateRoleReq struct {
	Role string `json:"role" binding:"required,oneof=admin user"`
}

// PATCH /users/:id/role (admin)
func (uc *UserController) UpdateRole(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req updateRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := uc.Service.UpdateRole(id, req.Role)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, user)
}
