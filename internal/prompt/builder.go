// Package prompt assembles classifier system prompts from curated and
// learned training examples.
package prompt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/twidpay/intellisearch/internal/docstore"
	"github.com/twidpay/intellisearch/internal/model"
)

const (
	// ExamplesMarker is the literal section header a personalized
	// prompt must contain to be considered trained.
	ExamplesMarker = "Examples:"

	// MinPersonalizedLength is the size gate below which a user prompt
	// is considered empty of signal and the global model is kept.
	MinPersonalizedLength = 1000

	DefaultMaxExamplesPerIntent = 5
)

type Builder struct {
	store       docstore.Store
	globalIndex string
	userPrefix  string
}

func NewBuilder(store docstore.Store, globalIndex, userPrefix string) *Builder {
	return &Builder{store: store, globalIndex: globalIndex, userPrefix: userPrefix}
}

// UsePersonalized reports whether a generated user prompt carries
// enough training signal to justify a dedicated model.
func UsePersonalized(prompt string) bool {
	return strings.Contains(prompt, ExamplesMarker) && len(prompt) > MinPersonalizedLength
}

// Build generates a system prompt. With a user id the example quota per
// intent splits 2 global + 3 user; without one it is all global.
// Example-fetch failures degrade to fewer examples, never to an error.
func (b *Builder) Build(ctx context.Context, userID string, maxExamplesPerIntent int) string {
	if maxExamplesPerIntent <= 0 {
		maxExamplesPerIntent = DefaultMaxExamplesPerIntent
	}
	maxGlobal := maxExamplesPerIntent
	maxUser := 0
	if userID != "" {
		maxGlobal = 2
		maxUser = 3
	}

	var sb strings.Builder
	sb.WriteString(basePrompt)
	count := 1
	for _, intent := range model.Intents() {
		for _, example := range b.examplesByIntent(ctx, intent, userID, maxGlobal, maxUser) {
			classification := model.ClassificationResult{
				Intent:        example.Intent,
				Confidence:    example.Confidence,
				ExtractedData: example.ExtractedData,
			}
			encoded, err := json.MarshalIndent(classification, "", "  ")
			if err != nil {
				continue
			}
			fmt.Fprintf(&sb, "\n%d. Query: %q\n   Classification: %s\n", count, example.Query, encoded)
			count++
		}
	}
	sb.WriteString(extractionRules)
	return sb.String()
}

// examplesByIntent fetches ranked examples: globals by quality then
// recency, user examples by recency with feedback-flagged ones first.
func (b *Builder) examplesByIntent(ctx context.Context, intent model.Intent, userID string, maxGlobal, maxUser int) []model.TrainingExample {
	logger := logutil.GetLogger(ctx).With(zap.String("intent", string(intent)))
	var examples []model.TrainingExample

	if maxGlobal > 0 {
		hits, err := b.store.Search(ctx, b.globalIndex, docstore.Query{
			Size: maxGlobal,
			Sort: []docstore.Sort{
				{Field: "data_quality", Desc: true},
				{Field: "timestamp", Desc: true},
			},
			Terms: map[string]interface{}{"intent": string(intent), "is_global": true},
		})
		if err != nil {
			logger.Error("fetch global examples failed", zap.Error(err))
		} else {
			examples = append(examples, decodeExamples(hits)...)
		}
	}

	if userID == "" || maxUser <= 0 {
		return examples
	}
	userIndex := docstore.UserTrainingIndex(b.userPrefix, userID)
	exists, err := b.store.IndexExists(ctx, userIndex)
	if err != nil || !exists {
		if err != nil {
			logger.Error("check user index failed", zap.String("user_id", userID), zap.Error(err))
		}
		return examples
	}

	feedbackHits, err := b.store.Search(ctx, userIndex, docstore.Query{
		Size:  maxUser,
		Sort:  []docstore.Sort{{Field: "timestamp", Desc: true}},
		Terms: map[string]interface{}{"intent": string(intent), "user_feedback": true},
	})
	if err != nil {
		logger.Error("fetch user feedback examples failed", zap.String("user_id", userID), zap.Error(err))
		return examples
	}
	fromFeedback := decodeExamples(feedbackHits)
	examples = append(examples, fromFeedback...)
	remaining := maxUser - len(fromFeedback)
	if remaining <= 0 {
		return examples
	}
	recentHits, err := b.store.Search(ctx, userIndex, docstore.Query{
		Size:  maxUser,
		Sort:  []docstore.Sort{{Field: "timestamp", Desc: true}},
		Terms: map[string]interface{}{"intent": string(intent)},
	})
	if err != nil {
		logger.Error("fetch user examples failed", zap.String("user_id", userID), zap.Error(err))
		return examples
	}
	// The store only filters on equality, so feedback-flagged examples
	// come back here too; skip them to keep the backfill distinct.
	for _, example := range decodeExamples(recentHits) {
		if remaining == 0 {
			break
		}
		if example.UserFeedback != nil && *example.UserFeedback {
			continue
		}
		examples = append(examples, example)
		remaining--
	}
	return examples
}

func decodeExamples(hits []docstore.Hit) []model.TrainingExample {
	examples := make([]model.TrainingExample, 0, len(hits))
	for _, hit := range hits {
		var example model.TrainingExample
		if err := hit.Decode(&example); err != nil {
			continue
		}
		examples = append(examples, example)
	}
	return examples
}
