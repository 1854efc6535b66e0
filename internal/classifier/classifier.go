// Package classifier turns free-text queries into structured intent
// classifications via a bound generative model.
package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/twidpay/intellisearch/internal/ai"
	"github.com/twidpay/intellisearch/internal/model"
)

const (
	// LowConfidenceThreshold triggers a second, hint-augmented attempt.
	LowConfidenceThreshold = 0.7
	// HighConfidenceThreshold gates saving a result as training data.
	HighConfidenceThreshold = 0.8
)

// Model binds a system prompt to a text generator. Models are
// immutable; refreshes build a new one and swap it into the Handle.
type Model struct {
	systemPrompt string
	gen          ai.IGenerator
}

func NewModel(systemPrompt string, gen ai.IGenerator) *Model {
	return &Model{systemPrompt: systemPrompt, gen: gen}
}

func (m *Model) SystemPrompt() string {
	return m.systemPrompt
}

// Classify always returns a usable result. Malformed model output maps
// to {OTHER, 0.5}; transport or model failure maps to {OTHER, 0.1}.
func (m *Model) Classify(ctx context.Context, query string, extra map[string]interface{}) model.ClassificationResult {
	userMessage := query
	if len(extra) > 0 {
		if encoded, err := json.Marshal(extra); err == nil {
			userMessage = query + "\nContext information: " + string(encoded)
		}
	}
	result, err := m.classifyOnce(ctx, userMessage)
	if err != nil {
		logger := logutil.GetLogger(ctx).With(zap.String("query", query))
		if isParseError(err) {
			logger.Error("failed to parse model response", zap.Error(err))
			return fallbackResult(0.5, "Failed to parse response")
		}
		logger.Error("classification failed", zap.Error(err))
		return fallbackResult(0.1, err.Error())
	}
	return result
}

// ClassifyWithRemediation reissues low-confidence classifications with
// intent-specific hints and adopts the second result only when it is
// strictly more confident. Remediation failures keep the original.
func (m *Model) ClassifyWithRemediation(ctx context.Context, query string, extra map[string]interface{}) model.ClassificationResult {
	result := m.Classify(ctx, query, extra)
	if result.Confidence >= LowConfidenceThreshold {
		return result
	}
	improved, err := m.classifyOnce(ctx, fmt.Sprintf(remediationTemplate, query))
	if err != nil {
		logutil.GetLogger(ctx).Error("remediation classification failed", zap.String("query", query), zap.Error(err))
		return result
	}
	if improved.Confidence > result.Confidence {
		logutil.GetLogger(ctx).Info("low confidence classification improved",
			zap.String("query", query),
			zap.Float64("before", result.Confidence),
			zap.Float64("after", improved.Confidence))
		return improved
	}
	return result
}

func (m *Model) classifyOnce(ctx context.Context, userMessage string) (model.ClassificationResult, error) {
	message := userMessage
	if m.systemPrompt != "" {
		message = fmt.Sprintf("System: %s\n\nUser: %s", m.systemPrompt, userMessage)
	}
	raw, err := m.gen.Generate(ctx, message)
	if err != nil {
		return model.ClassificationResult{}, err
	}
	return ParseResponse(raw)
}

var fencedBlock = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)\\s*```")

type parseError struct{ err error }

func (e parseError) Error() string { return e.err.Error() }
func (e parseError) Unwrap() error { return e.err }

func isParseError(err error) bool {
	_, ok := err.(parseError)
	return ok
}

// ParseResponse extracts a classification from raw model output,
// accepting either a fenced code block or bare JSON. A result missing
// intent, confidence, or extracted_data is invalid.
func ParseResponse(text string) (model.ClassificationResult, error) {
	payload := strings.TrimSpace(text)
	if match := fencedBlock.FindStringSubmatch(payload); match != nil {
		payload = strings.TrimSpace(match[1])
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &probe); err != nil {
		return model.ClassificationResult{}, parseError{fmt.Errorf("decode response: %w", err)}
	}
	for _, field := range []string{"intent", "confidence", "extracted_data"} {
		if _, ok := probe[field]; !ok {
			return model.ClassificationResult{}, parseError{fmt.Errorf("response missing %s", field)}
		}
	}
	var result model.ClassificationResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return model.ClassificationResult{}, parseError{fmt.Errorf("decode response: %w", err)}
	}
	if !result.Intent.Valid() {
		return model.ClassificationResult{}, parseError{fmt.Errorf("unknown intent %q", result.Intent)}
	}
	if result.Confidence < 0 || result.Confidence > 1 {
		return model.ClassificationResult{}, parseError{fmt.Errorf("confidence %v out of range", result.Confidence)}
	}
	if result.ExtractedData == nil {
		result.ExtractedData = map[string]interface{}{}
	}
	return result, nil
}

func fallbackResult(confidence float64, message string) model.ClassificationResult {
	return model.ClassificationResult{
		Intent:        model.IntentOther,
		Confidence:    confidence,
		ExtractedData: map[string]interface{}{},
		Error:         message,
	}
}

const remediationTemplate = `The user query %q was difficult to classify.

Consider these additional hints:
- If the query mentions a person's name followed by an amount, it's likely PAY_TO_PERSON
- Terms like "bill", "payment", "pay for" usually indicate PAY_BILL
- Words like "points", "cashback", "miles" suggest CHECK_REWARDS
- References to "history", "statement", "transactions" indicate TRANSACTION_HISTORY

Please reclassify the query with these hints in mind.
`
