package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/twidpay/intellisearch/internal/ai"
	"github.com/twidpay/intellisearch/internal/classifier"
	"github.com/twidpay/intellisearch/internal/model"
	"github.com/twidpay/intellisearch/internal/prompt"
)

const savedExampleQuality = 5

// IntentService runs the full classification pipeline: prompt
// selection, classification with low-confidence remediation,
// enrichment, and background persistence.
type IntentService struct {
	handle     *classifier.Handle
	gen        ai.IGenerator
	prompts    *prompt.Builder
	training   *TrainingService
	enrichment *EnrichmentService
	history    *HistoryService
	userModels *expirable.LRU[string, *classifier.Model]
}

func NewIntentService(
	handle *classifier.Handle,
	gen ai.IGenerator,
	prompts *prompt.Builder,
	training *TrainingService,
	enrichment *EnrichmentService,
	history *HistoryService,
) *IntentService {
	// Personalized models are cheap to rebuild; a short TTL keeps them
	// tracking fresh feedback without a per-request prompt build.
	cache := expirable.NewLRU[string, *classifier.Model](1024, nil, 10*time.Minute)
	return &IntentService{
		handle:     handle,
		gen:        gen,
		prompts:    prompts,
		training:   training,
		enrichment: enrichment,
		history:    history,
		userModels: cache,
	}
}

// Classify never fails: malformed model output and transport errors
// come back as low-confidence OTHER results.
func (s *IntentService) Classify(ctx context.Context, userID, sessionID, query string, extra map[string]interface{}) model.ClassificationResult {
	m := s.modelFor(ctx, userID)
	result := m.ClassifyWithRemediation(ctx, query, extra)

	if result.Confidence > classifier.HighConfidenceThreshold {
		saved := result
		go func() {
			bctx := context.Background()
			if err := s.training.SaveExample(bctx, query, saved, userID, nil, false, savedExampleQuality); err != nil {
				logutil.GetLogger(bctx).Error("save training example failed",
					zap.String("user_id", userID), zap.Error(err))
			}
		}()
	}

	s.enrichment.Apply(ctx, userID, &result)

	if userID != "" && s.history != nil {
		record := model.ChatHistoryRecord{
			UserID:    userID,
			SessionID: sessionID,
			Message:   query,
			Intent:    result.Intent,
		}
		if encoded, err := json.Marshal(result); err == nil {
			record.Response = string(encoded)
		}
		go func() {
			bctx := context.Background()
			if err := s.history.Append(bctx, record); err != nil {
				logutil.GetLogger(bctx).Error("append chat history failed",
					zap.String("user_id", userID), zap.Error(err))
			}
		}()
	}
	return result
}

// modelFor returns the personalized model for the user when their
// generated prompt passes the personalization gate, otherwise the
// process-wide current model.
func (s *IntentService) modelFor(ctx context.Context, userID string) *classifier.Model {
	current := s.handle.Current()
	if userID == "" {
		return current
	}
	if m, ok := s.userModels.Get(userID); ok {
		return m
	}
	userPrompt := s.prompts.Build(ctx, userID, prompt.DefaultMaxExamplesPerIntent)
	if !prompt.UsePersonalized(userPrompt) {
		return current
	}
	m := classifier.NewModel(userPrompt, s.gen)
	s.userModels.Add(userID, m)
	logutil.GetLogger(ctx).Info("using personalized model", zap.String("user_id", userID))
	return m
}
