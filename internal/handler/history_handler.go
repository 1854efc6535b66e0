package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/twidpay/intellisearch/internal/pkg/errcode"
	"github.com/twidpay/intellisearch/internal/pkg/response"
	"github.com/twidpay/intellisearch/internal/service"
)

type HistoryHandler struct {
	history *service.HistoryService
}

func NewHistoryHandler(history *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

func (h *HistoryHandler) List(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == "" {
		response.Error(c, errcode.ErrInvalid, "user_id is required")
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	records, err := h.history.List(c.Request.Context(), userID, limit)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"user_id": userID, "history": records})
}
