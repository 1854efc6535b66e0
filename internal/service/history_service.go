package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/twidpay/intellisearch/internal/docstore"
	"github.com/twidpay/intellisearch/internal/model"
	appErr "github.com/twidpay/intellisearch/internal/pkg/errors"
)

const maxChatRecordsPerUser = 100

const defaultHistoryLimit = 20

// HistoryService keeps a rolling window of chat records per user,
// oldest records dropped once the cap is exceeded.
type HistoryService struct {
	store docstore.Store
}

func NewHistoryService(store docstore.Store) *HistoryService {
	return &HistoryService{store: store}
}

func (s *HistoryService) Append(ctx context.Context, record model.ChatHistoryRecord) error {
	if record.UserID == "" {
		return appErr.ErrInvalid
	}
	if record.SessionID == "" {
		record.SessionID = uuid.NewString()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}
	if err := s.store.EnsureIndex(ctx, docstore.IndexChatHistory, docstore.ChatHistoryMapping); err != nil {
		return err
	}
	if err := s.store.Insert(ctx, docstore.IndexChatHistory, record); err != nil {
		return err
	}
	if err := s.prune(ctx, record.UserID); err != nil {
		// The record itself is stored; the window shrinks on the next
		// successful append.
		logutil.GetLogger(ctx).Warn("chat history prune failed",
			zap.String("user_id", record.UserID), zap.Error(err))
	}
	return nil
}

func (s *HistoryService) prune(ctx context.Context, userID string) error {
	total, err := s.store.Count(ctx, docstore.IndexChatHistory, map[string]interface{}{"user_id": userID})
	if err != nil {
		return err
	}
	excess := total - maxChatRecordsPerUser
	if excess <= 0 {
		return nil
	}
	hits, err := s.store.Search(ctx, docstore.IndexChatHistory, docstore.Query{
		Size:  excess,
		Sort:  []docstore.Sort{{Field: "timestamp"}},
		Terms: map[string]interface{}{"user_id": userID},
	})
	if err != nil {
		return err
	}
	for _, hit := range hits {
		if err := s.store.Delete(ctx, docstore.IndexChatHistory, hit.ID); err != nil {
			return err
		}
	}
	return nil
}

// List returns the user's most recent records, newest first.
func (s *HistoryService) List(ctx context.Context, userID string, limit int) ([]model.ChatHistoryRecord, error) {
	if userID == "" {
		return nil, appErr.ErrInvalid
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	exists, err := s.store.IndexExists(ctx, docstore.IndexChatHistory)
	if err != nil {
		return nil, err
	}
	if !exists {
		return []model.ChatHistoryRecord{}, nil
	}
	hits, err := s.store.Search(ctx, docstore.IndexChatHistory, docstore.Query{
		Size:  limit,
		Sort:  []docstore.Sort{{Field: "timestamp", Desc: true}},
		Terms: map[string]interface{}{"user_id": userID},
	})
	if err != nil {
		return nil, err
	}
	records := make([]model.ChatHistoryRecord, 0, len(hits))
	for _, hit := range hits {
		var record model.ChatHistoryRecord
		if err := hit.Decode(&record); err != nil {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}
