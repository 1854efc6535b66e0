package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/twidpay/intellisearch/internal/classifier"
	"github.com/twidpay/intellisearch/internal/docstore"
	"github.com/twidpay/intellisearch/internal/model"
	appErr "github.com/twidpay/intellisearch/internal/pkg/errors"
	"github.com/twidpay/intellisearch/internal/prompt"
)

// stubGen replays a fixed response for every generation call.
type stubGen struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
}

func (g *stubGen) Generate(ctx context.Context, p string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	return g.response, g.err
}

func (g *stubGen) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

const testGlobalIndex = "global_intent_training"

const testUserPrefix = "user_intent_training"

func newFeedbackFixture(t *testing.T) (*FeedbackService, *docstore.MemoryStore, *classifier.Handle) {
	t.Helper()
	store := docstore.NewMemoryStore()
	require.NoError(t, store.EnsureIndex(context.Background(), testGlobalIndex, ""))

	gen := &stubGen{}
	handle := classifier.NewHandle(classifier.NewModel("initial", gen))
	prompts := prompt.NewBuilder(store, testGlobalIndex, testUserPrefix)
	refresher := NewRefreshService(handle, prompts, gen)
	training := NewTrainingService(store, testGlobalIndex, testUserPrefix)
	return NewFeedbackService(training, refresher), store, handle
}

func TestFeedbackRecord_MissingIntentRejectedWithoutSideEffects(t *testing.T) {
	ctx := context.Background()
	svc, store, handle := newFeedbackFixture(t)
	before := handle.Current()

	err := svc.Record(ctx, FeedbackInput{Query: "pay my bill", UserID: "u1"})
	require.ErrorIs(t, err, appErr.ErrInvalid)

	count, err := store.Count(ctx, testGlobalIndex, nil)
	require.NoError(t, err)
	require.Zero(t, count)

	time.Sleep(50 * time.Millisecond)
	require.Same(t, before, handle.Current())
}

func TestFeedbackRecord_StoresExampleAndRefreshesModel(t *testing.T) {
	ctx := context.Background()
	svc, store, handle := newFeedbackFixture(t)
	before := handle.Current()

	require.NoError(t, svc.Record(ctx, FeedbackInput{
		Query:    "pay my hdfc bill",
		Intent:   model.IntentPayBill,
		IsGlobal: true,
	}))

	hits, err := store.Search(ctx, testGlobalIndex, docstore.Query{})
	require.NoError(t, err)
	require.Len(t, hits, 1)

	var example model.TrainingExample
	require.NoError(t, hits[0].Decode(&example))
	require.Equal(t, model.IntentPayBill, example.Intent)
	require.Equal(t, 1.0, example.Confidence)
	require.True(t, example.IsGlobal)
	require.NotNil(t, example.UserFeedback)
	require.True(t, *example.UserFeedback)
	require.Equal(t, feedbackExampleQuality, example.DataQuality)
	require.NotNil(t, example.ExtractedData)

	require.Eventually(t, func() bool {
		return handle.Current() != before
	}, time.Second, 10*time.Millisecond, "refresh should swap in a new model")
}

func TestFeedbackRecord_UserScopedExampleGoesToUserIndex(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newFeedbackFixture(t)

	confidence := 0.9
	require.NoError(t, svc.Record(ctx, FeedbackInput{
		Query:       "my points?",
		Intent:      model.IntentCheckRewards,
		Confidence:  &confidence,
		UserID:      "u42",
		DataQuality: 3,
	}))

	userIndex := docstore.UserTrainingIndex(testUserPrefix, "u42")
	hits, err := store.Search(ctx, userIndex, docstore.Query{})
	require.NoError(t, err)
	require.Len(t, hits, 1)

	var example model.TrainingExample
	require.NoError(t, hits[0].Decode(&example))
	require.Equal(t, 0.9, example.Confidence)
	require.Equal(t, 3, example.DataQuality)
	require.False(t, example.IsGlobal)
}

func TestFeedbackRecord_ExplicitZeroConfidenceKept(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newFeedbackFixture(t)

	zero := 0.0
	require.NoError(t, svc.Record(ctx, FeedbackInput{
		Query:      "not a payment",
		Intent:     model.IntentOther,
		Confidence: &zero,
		IsGlobal:   true,
	}))

	hits, err := store.Search(ctx, testGlobalIndex, docstore.Query{})
	require.NoError(t, err)
	require.Len(t, hits, 1)

	var example model.TrainingExample
	require.NoError(t, hits[0].Decode(&example))
	require.Equal(t, 0.0, example.Confidence)
}

func TestRefreshService_RebuildsPromptFromTrainingData(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	require.NoError(t, store.EnsureIndex(ctx, testGlobalIndex, ""))
	require.NoError(t, store.Insert(ctx, testGlobalIndex, model.TrainingExample{
		Query:         "pay my hdfc bill",
		Intent:        model.IntentPayBill,
		Confidence:    1.0,
		ExtractedData: map[string]interface{}{},
		Timestamp:     time.Now().UTC(),
		IsGlobal:      true,
		DataQuality:   9,
	}))

	gen := &stubGen{}
	handle := classifier.NewHandle(classifier.NewModel("initial", gen))
	refresher := NewRefreshService(handle, prompt.NewBuilder(store, testGlobalIndex, testUserPrefix), gen)

	require.NoError(t, refresher.Refresh(ctx))
	require.Contains(t, handle.Current().SystemPrompt(), "pay my hdfc bill")
}
