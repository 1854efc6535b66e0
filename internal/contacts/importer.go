package contacts

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/twidpay/intellisearch/internal/docstore"
)

// ImportAll loads every *.vcf file under dir into a per-user contact
// collection. The file name without extension is the user id. A bad
// file is logged and skipped so one broken export cannot block
// startup.
func ImportAll(ctx context.Context, dir string, store docstore.Store) error {
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logutil.GetLogger(ctx).Info("contacts dir absent, skipping import", zap.String("dir", dir))
			return nil
		}
		return err
	}
	logger := logutil.GetLogger(ctx).With(zap.String("dir", dir))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".vcf") {
			continue
		}
		userID := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if err := importFile(ctx, filepath.Join(dir, entry.Name()), userID, store); err != nil {
			logger.Warn("contact import failed", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		logger.Info("contacts imported", zap.String("user_id", userID))
	}
	return nil
}

func importFile(ctx context.Context, path, userID string, store docstore.Store) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	parsed, err := ParseVCF(file)
	if err != nil {
		return err
	}
	if len(parsed) == 0 {
		return nil
	}
	index := docstore.UserContactsIndex(userID)
	if err := store.EnsureIndex(ctx, index, docstore.ContactsMapping); err != nil {
		return err
	}
	docs := make([]interface{}, 0, len(parsed))
	for _, contact := range parsed {
		docs = append(docs, contact)
	}
	return store.BulkInsert(ctx, index, docs)
}
