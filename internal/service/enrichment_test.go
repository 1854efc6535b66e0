package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twidpay/intellisearch/internal/docstore"
	"github.com/twidpay/intellisearch/internal/model"
	"github.com/twidpay/intellisearch/internal/seed"
)

func seededStore(t *testing.T) *docstore.MemoryStore {
	t.Helper()
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	require.NoError(t, store.EnsureIndex(ctx, docstore.IndexGenericBills, ""))
	for _, bill := range seed.GenericBills() {
		require.NoError(t, store.Insert(ctx, docstore.IndexGenericBills, bill))
	}
	require.NoError(t, store.EnsureIndex(ctx, docstore.IndexUserCreditCards, ""))
	for _, card := range seed.UserCreditCards() {
		require.NoError(t, store.Insert(ctx, docstore.IndexUserCreditCards, card))
	}
	return store
}

func payToPersonResult(payee string) *model.ClassificationResult {
	return &model.ClassificationResult{
		Intent:        model.IntentPayToPerson,
		Confidence:    0.95,
		ExtractedData: map[string]interface{}{"payee_name": payee, "amount": 500},
	}
}

func payBillResult(biller string) *model.ClassificationResult {
	return &model.ClassificationResult{
		Intent:        model.IntentPayBill,
		Confidence:    0.95,
		ExtractedData: map[string]interface{}{"biller_name": biller},
	}
}

func TestEnrichPayToPerson_ReplacesPayeeWithContactMatches(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	index := docstore.UserContactsIndex("u1")
	require.NoError(t, store.EnsureIndex(ctx, index, ""))
	require.NoError(t, store.Insert(ctx, index, model.Contact{Name: "Rahul Sharma", Number: "+911111"}))
	require.NoError(t, store.Insert(ctx, index, model.Contact{Name: "Rahul Verma", Number: "+912222"}))
	require.NoError(t, store.Insert(ctx, index, model.Contact{Name: "Priya", Number: "+913333"}))

	result := payToPersonResult("rahul")
	NewEnrichmentService(store).Apply(ctx, "u1", result)

	require.NotContains(t, result.ExtractedData, "payee_name")
	matches, ok := result.ExtractedData["contacts"].([]model.Contact)
	require.True(t, ok)
	require.Len(t, matches, 2)
}

func TestEnrichPayToPerson_NoContactNamespaceLeavesResultUntouched(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	result := payToPersonResult("rahul")
	NewEnrichmentService(store).Apply(ctx, "unknown-user", result)

	require.Equal(t, "rahul", result.ExtractedData["payee_name"])
	require.NotContains(t, result.ExtractedData, "contacts")
}

func TestEnrichPayToPerson_CapsMatches(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	index := docstore.UserContactsIndex("u1")
	require.NoError(t, store.EnsureIndex(ctx, index, ""))
	for i := 0; i < 15; i++ {
		contact := model.Contact{Name: fmt.Sprintf("Rahul %d", i), Number: fmt.Sprintf("+91%04d", i)}
		require.NoError(t, store.Insert(ctx, index, contact))
	}

	result := payToPersonResult("rahul")
	NewEnrichmentService(store).Apply(ctx, "u1", result)

	matches, ok := result.ExtractedData["contacts"].([]model.Contact)
	require.True(t, ok)
	require.Len(t, matches, maxContactMatches)
}

func TestEnrichPayBill_MatchesUserCardsAndDedupes(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	result := payBillResult("HDFC Bank Credit Card")
	NewEnrichmentService(store).Apply(ctx, "40321617", result)

	cards, ok := result.ExtractedData["additional_data"].([]model.UserCreditCard)
	require.True(t, ok)
	require.Len(t, cards, 2)
	ids := []string{cards[0].Request.UniqueBillID, cards[1].Request.UniqueBillID}
	require.ElementsMatch(t, []string{"94", "40239"}, ids)
}

func TestEnrichPayBill_FallsBackToGenericCatalog(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	result := payBillResult("BESCOM")
	NewEnrichmentService(store).Apply(ctx, "40321617", result)

	bills, ok := result.ExtractedData["additional_data"].([]model.GenericBill)
	require.True(t, ok)
	require.Len(t, bills, 1)
	require.Equal(t, 48, bills[0].ID)
}

func TestEnrichPayBill_CreditCardCategoryFilter(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	result := payBillResult("Union")
	result.ExtractedData["category_name"] = "CREDIT CARD"
	NewEnrichmentService(store).Apply(ctx, "other-user", result)

	bills, ok := result.ExtractedData["additional_data"].([]model.GenericBill)
	require.True(t, ok)
	require.Len(t, bills, 1)
	require.True(t, bills[0].HasCategory(creditCardCategoryID))
	require.Equal(t, "Union Bank of India Credit Card", bills[0].Title)
}

func TestEnrichPayBill_NoMatchYieldsEmptySlice(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	result := payBillResult("Nonexistent Biller Co")
	NewEnrichmentService(store).Apply(ctx, "40321617", result)

	cards, ok := result.ExtractedData["additional_data"].([]model.UserCreditCard)
	require.True(t, ok)
	require.Empty(t, cards)
}

func TestEnrichPayBill_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	result := payBillResult("HDFC Credit Card")
	result.ExtractedData["additional_data"] = "already enriched"
	NewEnrichmentService(store).Apply(ctx, "40321617", result)

	require.Equal(t, "already enriched", result.ExtractedData["additional_data"])
}

func TestNormalizeBillerName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Axis Bank", "Axis"},
		{"HDFC Bank Credit Card", "HDFC Credit Card"},
		{"bank", ""},
		{"Bankers Trust", "Bankers Trust"},
		{"AU  Bank   Credit Card", "AU Credit Card"},
		{"", ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, NormalizeBillerName(tt.in), "input %q", tt.in)
	}
}

func TestDedupeCards(t *testing.T) {
	first := model.UserCreditCard{BillerName: "HDFC Credit Card", Subtitle: "XXXX 9840", Request: model.CardRequest{UniqueBillID: "94"}}
	dup := model.UserCreditCard{BillerName: "HDFC Credit Card", Subtitle: "XXXX 9999", Request: model.CardRequest{UniqueBillID: "94"}}
	other := model.UserCreditCard{BillerName: "SBI Card", Request: model.CardRequest{UniqueBillID: "96"}}
	noID1 := model.UserCreditCard{BillerName: "Mystery One"}
	noID2 := model.UserCreditCard{BillerName: "Mystery Two"}

	got := DedupeCards([]model.UserCreditCard{first, dup, other, noID1, noID2})
	require.Equal(t, []model.UserCreditCard{first, other, noID1, noID2}, got)
}
