package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/twidpay/intellisearch/internal/pkg/errcode"
	"github.com/twidpay/intellisearch/internal/pkg/response"
	"github.com/twidpay/intellisearch/internal/service"
)

type BillHandler struct {
	bills *service.BillService
}

func NewBillHandler(bills *service.BillService) *BillHandler {
	return &BillHandler{bills: bills}
}

type billsRequest struct {
	UserID       string `json:"user_id"`
	AIBillerName string `json:"ai_biller_name"`
	CategoryName string `json:"category_name"`
}

func (h *BillHandler) GetBills(c *gin.Context) {
	var req billsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	result, err := h.bills.GetBills(c.Request.Context(), req.UserID, req.AIBillerName, req.CategoryName)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}
