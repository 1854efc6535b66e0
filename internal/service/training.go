package service

import (
	"context"
	"time"

	"github.com/twidpay/intellisearch/internal/docstore"
	"github.com/twidpay/intellisearch/internal/model"
)

// TrainingService appends classification examples to the global or
// per-user training collections. Examples are never updated in place.
type TrainingService struct {
	store       docstore.Store
	globalIndex string
	userPrefix  string
}

func NewTrainingService(store docstore.Store, globalIndex, userPrefix string) *TrainingService {
	return &TrainingService{store: store, globalIndex: globalIndex, userPrefix: userPrefix}
}

func (s *TrainingService) SaveExample(ctx context.Context, query string, classification model.ClassificationResult,
	userID string, userFeedback *bool, isGlobal bool, dataQuality int) error {
	intent := classification.Intent
	if intent == "" {
		intent = model.IntentOther
	}
	extracted := classification.ExtractedData
	if extracted == nil {
		extracted = map[string]interface{}{}
	}
	example := model.TrainingExample{
		Query:         query,
		Intent:        intent,
		Confidence:    classification.Confidence,
		ExtractedData: extracted,
		Timestamp:     time.Now().UTC(),
		UserFeedback:  userFeedback,
		IsGlobal:      isGlobal,
		DataQuality:   dataQuality,
	}

	index := s.globalIndex
	if !isGlobal && userID != "" {
		index = docstore.UserTrainingIndex(s.userPrefix, userID)
		if err := s.store.EnsureIndex(ctx, index, docstore.TrainingMapping); err != nil {
			return err
		}
	}
	return s.store.Insert(ctx, index, example)
}
