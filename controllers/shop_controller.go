package controllers

import (
	"strconv"

	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type ShopController struct {
	Service *services.ShopService
}

func NewShopController(s *services.ShopService) *ShopController {
	return &ShopController{Service: s}
}

// POST /shops
func (sc *ShopController) Create(c *gin.Context) {
	var req services.CreateShopReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	shop, err := sc.Service.Create(utils.CurrentActor(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, shop)
}

// GET /shops
func (sc *ShopController) List(c *gin.Context) {
	q := services.ShopListQuery{
		Status: c.Query("status"),
		City:   c.Query("city"),
		Search: c.Query("search"),
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if v, ok := c.GetQuery("archived"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			resp.BadRequest(c, "Invalid archived flag.")
			return
		}
		q.Archived = &b
	}
	if v, ok := c.GetQuery("includeArchived"); ok {
		q.IncludeArchived, _ = strconv.ParseBool(v)
	}

	out, err := sc.Service.List(utils.CurrentActor(c), q)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /shops/:id
func (sc *ShopController) Detail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	shop, err := sc.Service.Get(utils.CurrentActor(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, shop)
}

// PATCH /shops/:id
func (sc *ShopController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateShopReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	shop, err := sc.Service.Update(utils.CurrentActor(c), id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, shop)
}

// DELETE /shops/:id (admin) — archive, not a row delete
func (sc *ShopController) Archive(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := sc.Service.Archive(utils.CurrentActor(c), id); err != nil {
		fail(c, err)
		return
	}
	resp.Message(c, "Coffee shop archived successfully.")
}

type addStaffReq struct {
	UserID uint   `json:"userId" binding:"required"`
	Role   string `json:"role" binding:"omitempty,oneof=owner manager barista cashier"`
}

// POST /shops/:id/staff
func (sc *ShopController) AddStaff(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req addStaffReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	shop, err := sc.Service.AddStaff(utils.CurrentActor(c), id, req.UserID, req.Role)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, shop)
}

// DELETE /shops/:id/staff/:userId
func (sc *ShopController) RemoveStaff(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}

	shop, err := sc.Service.RemoveStaff(utils.CurrentActor(c), id, userID)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, shop)
}
