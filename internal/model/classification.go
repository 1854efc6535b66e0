package model

// Intent is the classified purpose of a user query.
type Intent string

const (
	IntentPayToPerson        Intent = "PAY_TO_PERSON"
	IntentPayBill            Intent = "PAY_BILL"
	IntentCheckRewards       Intent = "CHECK_REWARDS"
	IntentTransactionHistory Intent = "TRANSACTION_HISTORY"
	IntentOther              Intent = "OTHER"
	IntentGeneralQuery       Intent = "GENERAL_QUERY"
	IntentError              Intent = "ERROR"
)

// Intents lists the taxonomy in prompt order. The few-shot example
// sections of the system prompt iterate in this order.
func Intents() []Intent {
	return []Intent{
		IntentPayToPerson,
		IntentPayBill,
		IntentCheckRewards,
		IntentTransactionHistory,
		IntentOther,
	}
}

func (i Intent) Valid() bool {
	switch i {
	case IntentPayToPerson, IntentPayBill, IntentCheckRewards,
		IntentTransactionHistory, IntentOther, IntentGeneralQuery, IntentError:
		return true
	}
	return false
}

// ClassificationResult is what the classifier hands back for every
// query. ExtractedData keys are intent-specific; enrichment may
// rewrite them (e.g. payee_name -> contacts).
type ClassificationResult struct {
	Intent        Intent                 `json:"intent"`
	Confidence    float64                `json:"confidence"`
	ExtractedData map[string]interface{} `json:"extracted_data"`
	Error         string                 `json:"error,omitempty"`
}
