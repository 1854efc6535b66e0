// Package seed installs the baseline datasets on startup: the global
// few-shot training corpus, the generic biller catalog, and the demo
// user credit cards.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/twidpay/intellisearch/internal/docstore"
	"github.com/twidpay/intellisearch/internal/model"
)

const seedExampleQuality = 10

// Bootstrap is idempotent: a collection that already exists is left
// untouched, so restarts never duplicate seed records.
func Bootstrap(ctx context.Context, store docstore.Store, globalIndex string) error {
	if err := seedTraining(ctx, store, globalIndex); err != nil {
		return fmt.Errorf("seed training examples: %w", err)
	}
	if err := seedIndex(ctx, store, docstore.IndexGenericBills, docstore.GenericBillsMapping, toDocs(GenericBills())); err != nil {
		return fmt.Errorf("seed generic bills: %w", err)
	}
	if err := seedIndex(ctx, store, docstore.IndexUserCreditCards, docstore.UserCreditCardsMapping, toDocs(UserCreditCards())); err != nil {
		return fmt.Errorf("seed user credit cards: %w", err)
	}
	return nil
}

func seedTraining(ctx context.Context, store docstore.Store, index string) error {
	now := time.Now().UTC()
	examples := TrainingExamples()
	docs := make([]interface{}, 0, len(examples))
	for _, example := range examples {
		docs = append(docs, model.TrainingExample{
			Query:         example.Query,
			Intent:        example.Intent,
			Confidence:    1.0,
			ExtractedData: example.ExtractedData,
			Timestamp:     now,
			IsGlobal:      true,
			DataQuality:   seedExampleQuality,
		})
	}
	return seedIndex(ctx, store, index, docstore.TrainingMapping, docs)
}

func seedIndex(ctx context.Context, store docstore.Store, index, mapping string, docs []interface{}) error {
	exists, err := store.IndexExists(ctx, index)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if err := store.EnsureIndex(ctx, index, mapping); err != nil {
		return err
	}
	if err := store.BulkInsert(ctx, index, docs); err != nil {
		return err
	}
	logutil.GetLogger(ctx).Info("seeded collection",
		zap.String("index", index), zap.Int("docs", len(docs)))
	return nil
}

func toDocs[T any](items []T) []interface{} {
	docs := make([]interface{}, 0, len(items))
	for _, item := range items {
		docs = append(docs, item)
	}
	return docs
}
