package controllers

import (
	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Service *services.AuthService
}

func NewAuthController(s *services.AuthService) *AuthController {
	return &AuthController{Service: s}
}

type registerReq struct {
	FullName string `json:"fullName" binding:"required,min=2,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=100"`
	AdminKey string `json:"adminKey"`
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, user, err := ac.Service.Register(req.FullName, req.Email, req.Password, req.AdminKey)
	if err != nil {
		fail(c, err)
		return
	}

	resp.Created(c, gin.H{
		"message": "User registered successfully.",
		"token":   token,
		"user": gin.H{
			"id": user.ID, "fullName": user.FullName, "email": user.Email, "role": user.Role,
		},
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, user, err := ac.Service.Login(req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	resp.OK(c, gin.H{
		"message": "Login successful.",
		"token":   token,
		"user": gin.H{
			"id": user.ID, "fullName": user.FullName, "email": user.Email, "role": user.Role,
		},
	})
}

func (ac *AuthController) Me(c *gin.Context) {
	user, err := ac.Service.Me(utils.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"user": user})
}
