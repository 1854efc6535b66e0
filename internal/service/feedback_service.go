package service

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/twidpay/intellisearch/internal/ai"
	"github.com/twidpay/intellisearch/internal/classifier"
	"github.com/twidpay/intellisearch/internal/model"
	appErr "github.com/twidpay/intellisearch/internal/pkg/errors"
	"github.com/twidpay/intellisearch/internal/prompt"
)

const feedbackExampleQuality = 8

// FeedbackService records corrected classifications and triggers the
// asynchronous model refresh.
type FeedbackService struct {
	training  *TrainingService
	refresher *RefreshService
}

func NewFeedbackService(training *TrainingService, refresher *RefreshService) *FeedbackService {
	return &FeedbackService{training: training, refresher: refresher}
}

// FeedbackInput is one corrected classification. Confidence is a
// pointer so that an explicit 0.0 survives; only an absent value
// defaults to 1.0.
type FeedbackInput struct {
	Query         string
	Intent        model.Intent
	Confidence    *float64
	ExtractedData map[string]interface{}
	UserID        string
	IsGlobal      bool
	DataQuality   int
}

// Record validates and stores one feedback example, then schedules a
// refresh. A missing intent is a client error: nothing is written and
// no refresh is scheduled.
func (s *FeedbackService) Record(ctx context.Context, in FeedbackInput) error {
	if in.Query == "" || in.Intent == "" {
		return appErr.ErrInvalid
	}
	correct := model.ClassificationResult{
		Intent:        in.Intent,
		Confidence:    1.0,
		ExtractedData: in.ExtractedData,
	}
	if in.Confidence != nil {
		correct.Confidence = *in.Confidence
	}
	if correct.ExtractedData == nil {
		correct.ExtractedData = map[string]interface{}{}
	}
	dataQuality := in.DataQuality
	if dataQuality <= 0 {
		dataQuality = feedbackExampleQuality
	}
	feedback := true
	if err := s.training.SaveExample(ctx, in.Query, correct, in.UserID, &feedback, in.IsGlobal, dataQuality); err != nil {
		return err
	}
	s.refresher.ScheduleRefresh()
	return nil
}

// RefreshService rebuilds the global model from current training data
// and swaps it into the shared handle.
type RefreshService struct {
	handle  *classifier.Handle
	prompts *prompt.Builder
	gen     ai.IGenerator
}

func NewRefreshService(handle *classifier.Handle, prompts *prompt.Builder, gen ai.IGenerator) *RefreshService {
	return &RefreshService{handle: handle, prompts: prompts, gen: gen}
}

// ScheduleRefresh runs a refresh detached from the request cycle;
// failures are logged only.
func (s *RefreshService) ScheduleRefresh() {
	go func() {
		ctx := context.Background()
		if err := s.Refresh(ctx); err != nil {
			logutil.GetLogger(ctx).Error("model refresh failed", zap.Error(err))
		}
	}()
}

func (s *RefreshService) Refresh(ctx context.Context) error {
	systemPrompt := s.prompts.Build(ctx, "", prompt.DefaultMaxExamplesPerIntent)
	s.handle.Swap(classifier.NewModel(systemPrompt, s.gen))
	logutil.GetLogger(ctx).Info("model refreshed with latest training data")
	return nil
}
