package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/twidpay/intellisearch/internal/model"
	"github.com/twidpay/intellisearch/internal/pkg/errcode"
	"github.com/twidpay/intellisearch/internal/pkg/response"
	"github.com/twidpay/intellisearch/internal/service"
)

type IntentHandler struct {
	intents   *service.IntentService
	feedback  *service.FeedbackService
	refresher *service.RefreshService
}

func NewIntentHandler(intents *service.IntentService, feedback *service.FeedbackService, refresher *service.RefreshService) *IntentHandler {
	return &IntentHandler{intents: intents, feedback: feedback, refresher: refresher}
}

type classifyRequest struct {
	Query     string                 `json:"query"`
	UserID    string                 `json:"user_id"`
	SessionID string                 `json:"session_id"`
	Context   map[string]interface{} `json:"context"`
}

func (h *IntentHandler) Classify(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if req.Query == "" {
		response.Error(c, errcode.ErrInvalid, "query is required")
		return
	}
	result := h.intents.Classify(c.Request.Context(), req.UserID, req.SessionID, req.Query, req.Context)
	response.Success(c, result)
}

type feedbackRequest struct {
	Query         string         `json:"query"`
	CorrectIntent feedbackIntent `json:"correct_intent"`
	UserID        string         `json:"user_id"`
	IsGlobal      bool           `json:"is_global"`
	DataQuality   int            `json:"data_quality"`
}

type feedbackIntent struct {
	Intent        model.Intent           `json:"intent"`
	Confidence    *float64               `json:"confidence"`
	ExtractedData map[string]interface{} `json:"extracted_data"`
}

func (h *IntentHandler) Feedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	input := service.FeedbackInput{
		Query:         req.Query,
		Intent:        req.CorrectIntent.Intent,
		Confidence:    req.CorrectIntent.Confidence,
		ExtractedData: req.CorrectIntent.ExtractedData,
		UserID:        req.UserID,
		IsGlobal:      req.IsGlobal,
		DataQuality:   req.DataQuality,
	}
	if err := h.feedback.Record(c.Request.Context(), input); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "feedback recorded"})
}

func (h *IntentHandler) RefreshModel(c *gin.Context) {
	if err := h.refresher.Refresh(c.Request.Context()); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "model refreshed with latest training data"})
}
