package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/twidpay/intellisearch/internal/docstore"
	"github.com/twidpay/intellisearch/internal/model"
)

const (
	maxContactMatches    = 10
	creditCardCategoryID = 22
)

// EnrichmentService post-processes classification results against
// authoritative records. Lookup failures degrade to "no match" and
// never fail the request.
type EnrichmentService struct {
	store docstore.Store
}

func NewEnrichmentService(store docstore.Store) *EnrichmentService {
	return &EnrichmentService{store: store}
}

// Apply augments extracted data in place, keyed on intent. Re-applying
// to an already-enriched result is a no-op.
func (s *EnrichmentService) Apply(ctx context.Context, userID string, result *model.ClassificationResult) {
	if result == nil || result.ExtractedData == nil {
		return
	}
	switch result.Intent {
	case model.IntentPayToPerson:
		s.enrichPayToPerson(ctx, userID, result)
	case model.IntentPayBill:
		s.enrichPayBill(ctx, userID, result)
	}
}

func (s *EnrichmentService) enrichPayToPerson(ctx context.Context, userID string, result *model.ClassificationResult) {
	payee, _ := result.ExtractedData["payee_name"].(string)
	if payee == "" || userID == "" {
		return
	}
	logger := logutil.GetLogger(ctx).With(zap.String("user_id", userID), zap.String("payee", payee))

	index := docstore.UserContactsIndex(userID)
	exists, err := s.store.IndexExists(ctx, index)
	if err != nil {
		logger.Error("contact namespace check failed", zap.Error(err))
		return
	}
	if !exists {
		return
	}

	matches := make([]model.Contact, 0, maxContactMatches)
	hits, err := s.store.Search(ctx, index, docstore.Query{Size: 1000})
	if err != nil {
		logger.Error("contact lookup failed", zap.Error(err))
	} else {
		needle := strings.ToLower(payee)
		for _, hit := range hits {
			var contact model.Contact
			if err := hit.Decode(&contact); err != nil {
				continue
			}
			name := strings.ToLower(contact.Name)
			if strings.Contains(name, needle) || strings.Contains(needle, name) {
				matches = append(matches, contact)
				if len(matches) >= maxContactMatches {
					break
				}
			}
		}
	}

	// Ambiguity stays a list; the caller disambiguates.
	delete(result.ExtractedData, "payee_name")
	result.ExtractedData["contacts"] = matches
}

func (s *EnrichmentService) enrichPayBill(ctx context.Context, userID string, result *model.ClassificationResult) {
	if _, done := result.ExtractedData["additional_data"]; done {
		return
	}
	billerName, _ := result.ExtractedData["biller_name"].(string)
	normalized := NormalizeBillerName(billerName)
	if normalized == "" {
		result.ExtractedData["additional_data"] = []model.UserCreditCard{}
		return
	}
	logger := logutil.GetLogger(ctx).With(zap.String("user_id", userID), zap.String("biller", normalized))

	if userID != "" {
		hits, err := s.store.Search(ctx, docstore.IndexUserCreditCards, docstore.Query{
			Size:  100,
			Terms: map[string]interface{}{"customer_id": userID},
			Match: map[string]string{"biller_name": normalized},
		})
		if err != nil {
			logger.Error("credit card lookup failed", zap.Error(err))
		} else if len(hits) > 0 {
			cards := make([]model.UserCreditCard, 0, len(hits))
			for _, hit := range hits {
				var card model.UserCreditCard
				if err := hit.Decode(&card); err != nil {
					continue
				}
				cards = append(cards, card)
			}
			result.ExtractedData["additional_data"] = DedupeCards(cards)
			return
		}
	}

	categoryName, _ := result.ExtractedData["category_name"].(string)
	matched, ok := s.matchGenericBill(ctx, normalized, categoryName)
	if !ok {
		result.ExtractedData["additional_data"] = []model.UserCreditCard{}
		return
	}
	result.ExtractedData["additional_data"] = []model.GenericBill{matched}
}

func (s *EnrichmentService) matchGenericBill(ctx context.Context, normalizedBiller, categoryName string) (model.GenericBill, bool) {
	hits, err := s.store.Search(ctx, docstore.IndexGenericBills, docstore.Query{Size: 1000})
	if err != nil {
		logutil.GetLogger(ctx).Error("generic bill lookup failed", zap.Error(err))
		return model.GenericBill{}, false
	}
	creditCardOnly := strings.EqualFold(strings.TrimSpace(categoryName), "CREDIT CARD")
	needle := strings.ToLower(normalizedBiller)
	for _, hit := range hits {
		var bill model.GenericBill
		if err := hit.Decode(&bill); err != nil {
			continue
		}
		if creditCardOnly && !bill.HasCategory(creditCardCategoryID) {
			continue
		}
		if strings.Contains(strings.ToLower(NormalizeBillerName(bill.DisplayName())), needle) {
			return bill, true
		}
	}
	return model.GenericBill{}, false
}

var bankWord = regexp.MustCompile(`(?i)\bbank\b`)
var spaces = regexp.MustCompile(`\s+`)

// NormalizeBillerName strips the standalone word "bank" so that
// "Axis Bank" from the model matches the stored "Axis" billers and
// vice versa.
func NormalizeBillerName(name string) string {
	cleaned := bankWord.ReplaceAllString(name, " ")
	return strings.TrimSpace(spaces.ReplaceAllString(cleaned, " "))
}

// DedupeCards collapses cards sharing a unique_bill_id, first
// occurrence winning. Cards without an id are always kept.
func DedupeCards(cards []model.UserCreditCard) []model.UserCreditCard {
	seen := make(map[string]struct{}, len(cards))
	out := make([]model.UserCreditCard, 0, len(cards))
	for _, card := range cards {
		id := card.Request.UniqueBillID
		if id != "" {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
		}
		out = append(out, card)
	}
	return out
}
