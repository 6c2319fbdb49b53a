package controllers

import (
	"strconv"

	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Service *services.OrderService
}

func NewOrderController(s *services.OrderService) *OrderController {
	return &OrderController{Service: s}
}

// POST /orders
func (oc *OrderController) Create(c *gin.Context) {
	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.Service.Create(utils.CurrentActor(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, order)
}

// GET /orders
func (oc *OrderController) List(c *gin.Context) {
	q := services.OrderListQuery{
		Status:        c.Query("status"),
		PaymentStatus: c.Query("paymentStatus"),
		Search:        c.Query("search"),
		SortBy:        c.DefaultQuery("sortBy", "createdAt"),
		SortOrder:     c.DefaultQuery("sortOrder", "desc"),
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if v := c.Query("shop"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			resp.BadRequest(c, "Invalid shop id.")
			return
		}
		q.ShopID = uint(id)
	}
	if v := c.Query("cashier"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			resp.BadRequest(c, "Invalid cashier id.")
			return
		}
		q.CashierID = uint(id)
	}

	out, err := oc.Service.List(utils.CurrentActor(c), q)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /orders/:id
func (oc *OrderController) Detail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	order, err := oc.Service.Get(utils.CurrentActor(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, order)
}

// PATCH /orders/:id
func (oc *OrderController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.Service.Update(utils.CurrentActor(c), id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, order)
}

// DELETE /orders/:id
func (oc *OrderController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := oc.Service.Delete(utils.CurrentActor(c), id); err != nil {
		fail(c, err)
		return
	}
	resp.Message(c, "Order deleted successfully.")
}

// ----- Items -----

// POST /orders/:id/items
func (oc *OrderController) AddItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req services.OrderItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.Service.AddItem(utils.CurrentActor(c), id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, order)
}

type adjustQuantityReq struct {
	Delta int `json:"delta" binding:"required"`
}

// PATCH /orders/:id/items/:itemId/quantity
func (oc *OrderController) AdjustItemQuantity(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}

	var req adjustQuantityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.Service.AdjustItemQuantity(utils.CurrentActor(c), id, itemID, req.Delta)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, order)
}

type itemStatusReq struct {
	ItemStatus string `json:"itemStatus" binding:"required,oneof=queued in_preparation ready served"`
}

// PATCH /orders/:id/items/:itemId/status
func (oc *OrderController) SetItemStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}

	var req itemStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.Service.SetItemStatus(utils.CurrentActor(c), id, itemID, req.ItemStatus)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, order)
}

// DELETE /orders/:id/items/:itemId
func (oc *OrderController) RemoveItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}

	order, err := oc.Service.RemoveItem(utils.CurrentActor(c), id, itemID)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, order)
}

// ----- Notes -----

type addNoteReq struct {
	Text string `json:"text" binding:"required,min=1,max=800"`
}

// POST /orders/:id/notes
func (oc *OrderController) AddNote(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req addNoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.Service.AddNote(utils.CurrentActor(c), id, req.Text)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, order)
}

// DELETE /orders/:id/notes/:noteId
func (oc *OrderController) RemoveNote(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	noteID, ok := paramID(c, "noteId")
	if !ok {
		return
	}

	order, err := oc.Service.RemoveNote(utils.CurrentActor(c), id, noteID)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, order)
}
