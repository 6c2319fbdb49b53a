package controllers

import (
	"errors"
	"strconv"

	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

// fail maps service sentinels onto HTTP status classes. Unknown errors
// surface as 500.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrShopNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrItemNotFound),
		errors.Is(err, services.ErrUserNotFound):
		resp.NotFound(c, err.Error())
	case errors.Is(err, services.ErrForbidden),
		errors.Is(err, services.ErrNotOrderable),
		errors.Is(err, services.ErrSelfOrder),
		errors.Is(err, services.ErrArchiveOnly):
		resp.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidDelta),
		errors.Is(err, services.ErrOwnerStaff):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrDuplicateStaff),
		errors.Is(err, services.ErrAlreadyArchived):
		resp.Conflict(c, err.Error())
	case errors.Is(err, services.ErrBadCredentials):
		resp.Unauthorized(c, err.Error())
	default:
		resp.ServerError(c, err)
	}
}

// paramID parses a numeric path parameter; shape errors are the caller's 400.
func paramID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		resp.BadRequest(c, "Invalid "+name+".")
		return 0, false
	}
	return uint(v), true
}
