package classifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twidpay/intellisearch/internal/model"
)

type fakeGen struct {
	outputs []string
	errs    []error
	prompts []string
}

func (f *fakeGen) Generate(ctx context.Context, prompt string) (string, error) {
	call := len(f.prompts)
	f.prompts = append(f.prompts, prompt)
	var err error
	if call < len(f.errs) {
		err = f.errs[call]
	}
	var out string
	if call < len(f.outputs) {
		out = f.outputs[call]
	}
	return out, err
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    model.ClassificationResult
		wantErr bool
	}{
		{
			name:  "bare json",
			input: `{"intent": "PAY_BILL", "confidence": 0.92, "extracted_data": {"biller_name": "HDFC"}}`,
			want: model.ClassificationResult{
				Intent:        model.IntentPayBill,
				Confidence:    0.92,
				ExtractedData: map[string]interface{}{"biller_name": "HDFC"},
			},
		},
		{
			name:  "fenced json block",
			input: "Here you go:\n```json\n{\"intent\": \"CHECK_REWARDS\", \"confidence\": 0.8, \"extracted_data\": {}}\n```",
			want: model.ClassificationResult{
				Intent:        model.IntentCheckRewards,
				Confidence:    0.8,
				ExtractedData: map[string]interface{}{},
			},
		},
		{
			name:  "fence without language tag",
			input: "```\n{\"intent\": \"OTHER\", \"confidence\": 1, \"extracted_data\": null}\n```",
			want: model.ClassificationResult{
				Intent:        model.IntentOther,
				Confidence:    1,
				ExtractedData: map[string]interface{}{},
			},
		},
		{
			name:    "missing confidence",
			input:   `{"intent": "PAY_BILL", "extracted_data": {}}`,
			wantErr: true,
		},
		{
			name:    "missing extracted_data",
			input:   `{"intent": "PAY_BILL", "confidence": 0.9}`,
			wantErr: true,
		},
		{
			name:    "not json at all",
			input:   "I cannot classify this query.",
			wantErr: true,
		},
		{
			name:    "intent outside taxonomy",
			input:   `{"intent": "BANANA", "confidence": 0.9, "extracted_data": {}}`,
			wantErr: true,
		},
		{
			name:    "confidence above one",
			input:   `{"intent": "PAY_BILL", "confidence": 7.5, "extracted_data": {}}`,
			wantErr: true,
		},
		{
			name:    "negative confidence",
			input:   `{"intent": "PAY_BILL", "confidence": -0.2, "extracted_data": {}}`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResponse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, isParseError(err))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_ParseFailureFallsBack(t *testing.T) {
	gen := &fakeGen{outputs: []string{"garbage output"}}
	m := NewModel("prompt", gen)

	got := m.Classify(context.Background(), "pay my bill", nil)
	require.Equal(t, model.IntentOther, got.Intent)
	require.Equal(t, 0.5, got.Confidence)
	require.Equal(t, "Failed to parse response", got.Error)
	require.NotNil(t, got.ExtractedData)
}

func TestClassify_OutOfTaxonomyResponseFallsBack(t *testing.T) {
	gen := &fakeGen{outputs: []string{`{"intent": "BANANA", "confidence": 7.5, "extracted_data": {}}`}}
	m := NewModel("prompt", gen)

	got := m.Classify(context.Background(), "peel me a fruit", nil)
	require.True(t, got.Intent.Valid())
	require.Equal(t, model.IntentOther, got.Intent)
	require.Equal(t, 0.5, got.Confidence)
	require.Equal(t, "Failed to parse response", got.Error)
}

func TestClassify_GenerateFailureFallsBack(t *testing.T) {
	gen := &fakeGen{errs: []error{errors.New("model timed out")}}
	m := NewModel("prompt", gen)

	got := m.Classify(context.Background(), "pay my bill", nil)
	require.Equal(t, model.IntentOther, got.Intent)
	require.Equal(t, 0.1, got.Confidence)
	require.Contains(t, got.Error, "model timed out")
}

func TestClassify_AppendsContextInformation(t *testing.T) {
	gen := &fakeGen{outputs: []string{`{"intent": "OTHER", "confidence": 1, "extracted_data": {}}`}}
	m := NewModel("prompt", gen)

	m.Classify(context.Background(), "hello", map[string]interface{}{"channel": "app"})
	require.Len(t, gen.prompts, 1)
	require.Contains(t, gen.prompts[0], "Context information:")
	require.Contains(t, gen.prompts[0], `"channel":"app"`)
	require.Contains(t, gen.prompts[0], "System: prompt")
}

func TestClassifyWithRemediation_SkipsWhenConfident(t *testing.T) {
	gen := &fakeGen{outputs: []string{`{"intent": "PAY_BILL", "confidence": 0.9, "extracted_data": {}}`}}
	m := NewModel("prompt", gen)

	got := m.ClassifyWithRemediation(context.Background(), "pay hdfc bill", nil)
	require.Equal(t, model.IntentPayBill, got.Intent)
	require.Len(t, gen.prompts, 1)
}

func TestClassifyWithRemediation_AdoptsStrictlyBetterResult(t *testing.T) {
	gen := &fakeGen{outputs: []string{
		`{"intent": "OTHER", "confidence": 0.4, "extracted_data": {}}`,
		`{"intent": "PAY_BILL", "confidence": 0.85, "extracted_data": {"biller_name": "HDFC"}}`,
	}}
	m := NewModel("prompt", gen)

	got := m.ClassifyWithRemediation(context.Background(), "hdfc", nil)
	require.Equal(t, model.IntentPayBill, got.Intent)
	require.Equal(t, 0.85, got.Confidence)
	require.Len(t, gen.prompts, 2)
}

func TestClassifyWithRemediation_KeepsOriginalOnTie(t *testing.T) {
	gen := &fakeGen{outputs: []string{
		`{"intent": "OTHER", "confidence": 0.4, "extracted_data": {}}`,
		`{"intent": "PAY_BILL", "confidence": 0.4, "extracted_data": {}}`,
	}}
	m := NewModel("prompt", gen)

	got := m.ClassifyWithRemediation(context.Background(), "hdfc", nil)
	require.Equal(t, model.IntentOther, got.Intent)
}

func TestClassifyWithRemediation_KeepsOriginalOnRetryFailure(t *testing.T) {
	gen := &fakeGen{
		outputs: []string{`{"intent": "OTHER", "confidence": 0.3, "extracted_data": {}}`, ""},
		errs:    []error{nil, errors.New("model down")},
	}
	m := NewModel("prompt", gen)

	got := m.ClassifyWithRemediation(context.Background(), "hdfc", nil)
	require.Equal(t, model.IntentOther, got.Intent)
	require.Equal(t, 0.3, got.Confidence)
}

func TestHandleSwap(t *testing.T) {
	gen := &fakeGen{}
	first := NewModel("first", gen)
	second := NewModel("second", gen)

	h := NewHandle(first)
	require.Same(t, first, h.Current())
	h.Swap(second)
	require.Same(t, second, h.Current())
}
