package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/twidpay/intellisearch/internal/pkg/response"
)

type RouterDeps struct {
	Intents *IntentHandler
	Bills   *BillHandler
	History *HistoryHandler
}

func RegisterRoutes(g *gin.RouterGroup, deps RouterDeps) {
	g.GET("/health", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "healthy"})
	})

	api := g.Group("/api")
	api.POST("/classify-intent", deps.Intents.Classify)
	api.POST("/feedback", deps.Intents.Feedback)
	api.POST("/refresh-model", deps.Intents.RefreshModel)
	api.POST("/bills", deps.Bills.GetBills)
	api.GET("/chat/history/:user_id", deps.History.List)
}
