package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twidpay/intellisearch/internal/docstore"
	"github.com/twidpay/intellisearch/internal/model"
)

func TestBootstrap_PopulatesBaselineData(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	require.NoError(t, Bootstrap(ctx, store, "global_intent_training"))

	count, err := store.Count(ctx, "global_intent_training", nil)
	require.NoError(t, err)
	require.Equal(t, len(TrainingExamples()), count)

	count, err = store.Count(ctx, docstore.IndexGenericBills, nil)
	require.NoError(t, err)
	require.Equal(t, len(GenericBills()), count)

	count, err = store.Count(ctx, docstore.IndexUserCreditCards, nil)
	require.NoError(t, err)
	require.Equal(t, len(UserCreditCards()), count)
}

func TestBootstrap_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	require.NoError(t, Bootstrap(ctx, store, "global_intent_training"))
	require.NoError(t, Bootstrap(ctx, store, "global_intent_training"))

	count, err := store.Count(ctx, docstore.IndexGenericBills, nil)
	require.NoError(t, err)
	require.Equal(t, len(GenericBills()), count)
}

func TestTrainingExamples_CoverEveryClassifiableIntent(t *testing.T) {
	perIntent := map[model.Intent]int{}
	for _, example := range TrainingExamples() {
		perIntent[example.Intent]++
	}
	for _, intent := range model.Intents() {
		require.Equal(t, 3, perIntent[intent], "intent %s", intent)
	}
}

func TestGenericBills_EveryEntryHasDisplayName(t *testing.T) {
	for _, bill := range GenericBills() {
		require.NotEmpty(t, bill.DisplayName(), "bill %d", bill.ID)
		require.NotEmpty(t, bill.Request, "bill %d", bill.ID)
	}
}
