package handler

import (
	"errors"
	"net/http"

	"github.com/blues/fes/internal/logic"
	"github.com/gin-gonic/gin"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
	})
}

// FailWithError 按错误类别映射HTTP状态码
func FailWithError(c *gin.Context, err error) {
	switch {
	case logic.IsValidation(err), errors.Is(err, logic.ErrBelowMinimum):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, logic.ErrCampaignNotFound):
		ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, logic.ErrUnauthorized):
		ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, logic.ErrDeadlinePassed),
		errors.Is(err, logic.ErrTooEarly),
		errors.Is(err, logic.ErrGoalNotMet),
		errors.Is(err, logic.ErrGoalMet),
		errors.Is(err, logic.ErrAlreadyWithdrawn),
		errors.Is(err, logic.ErrNothingToRefund):
		ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, logic.ErrTransferFailed):
		ErrorResponse(c, http.StatusBadGateway, err.Error())
	default:
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
	}
}
