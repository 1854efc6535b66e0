package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/twidpay/intellisearch/internal/docstore"
	"github.com/twidpay/intellisearch/internal/model"
)

// MatchedCard is a saved card echoed with itself under
// extracted_data.additional_data, the shape the payment screen
// consumes directly.
type MatchedCard struct {
	model.UserCreditCard
	ExtractedData MatchedCardData `json:"extracted_data"`
}

type MatchedCardData struct {
	AdditionalData model.UserCreditCard `json:"additional_data"`
}

// BillsResponse carries either the user's matched cards or the
// generic catalog, never both.
type BillsResponse struct {
	MatchedCards []MatchedCard       `json:"matched_cards,omitempty"`
	GenericBills []model.GenericBill `json:"generic_bills,omitempty"`
}

// BillService resolves payable billers for the bills screen. Unlike
// enrichment, store failures here are hard errors.
type BillService struct {
	store docstore.Store
}

func NewBillService(store docstore.Store) *BillService {
	return &BillService{store: store}
}

// GetBills prefers the user's own saved cards matching aiBillerName
// and falls back to the generic catalog, optionally narrowed to the
// credit card category.
func (s *BillService) GetBills(ctx context.Context, userID, aiBillerName, categoryName string) (*BillsResponse, error) {
	generic, err := s.fetchGenericBills(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch generic bills: %w", err)
	}

	if userID != "" && aiBillerName != "" {
		hits, err := s.store.Search(ctx, docstore.IndexUserCreditCards, docstore.Query{
			Size:  100,
			Terms: map[string]interface{}{"customer_id": userID},
			Match: map[string]string{"biller_name": aiBillerName},
		})
		if err != nil {
			return nil, fmt.Errorf("search user cards: %w", err)
		}
		if len(hits) > 0 {
			matched := make([]MatchedCard, 0, len(hits))
			for _, hit := range hits {
				var card model.UserCreditCard
				if err := hit.Decode(&card); err != nil {
					continue
				}
				matched = append(matched, MatchedCard{
					UserCreditCard: card,
					ExtractedData:  MatchedCardData{AdditionalData: card},
				})
			}
			return &BillsResponse{MatchedCards: matched}, nil
		}
	}

	if strings.EqualFold(strings.TrimSpace(categoryName), "CREDIT CARD") {
		filtered := make([]model.GenericBill, 0, len(generic))
		for _, bill := range generic {
			if bill.HasCategory(creditCardCategoryID) {
				filtered = append(filtered, bill)
			}
		}
		generic = filtered
	}
	return &BillsResponse{GenericBills: generic}, nil
}

func (s *BillService) fetchGenericBills(ctx context.Context) ([]model.GenericBill, error) {
	hits, err := s.store.Search(ctx, docstore.IndexGenericBills, docstore.Query{Size: 1000})
	if err != nil {
		return nil, err
	}
	bills := make([]model.GenericBill, 0, len(hits))
	for _, hit := range hits {
		var bill model.GenericBill
		if err := hit.Decode(&bill); err != nil {
			continue
		}
		bills = append(bills, bill)
	}
	return bills, nil
}
