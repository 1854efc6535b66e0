package docstore

// Shared collection names. Training indices are configurable and built
// through the helper functions below.
const (
	IndexGenericBills    = "generic_bills"
	IndexUserCreditCards = "user_credit_cards"
	IndexChatHistory     = "chat_intents"
)

func UserTrainingIndex(prefix, userID string) string {
	return prefix + "_" + userID
}

func UserContactsIndex(userID string) string {
	return "user_contacts_" + userID
}

// Index mappings, kept verbatim from the store schema. The memory
// implementation ignores them.
const (
	TrainingMapping = `{
  "mappings": {
    "properties": {
      "query": {"type": "text"},
      "intent": {"type": "keyword"},
      "confidence": {"type": "float"},
      "extracted_data": {"type": "object"},
      "timestamp": {"type": "date"},
      "user_feedback": {"type": "boolean"},
      "is_global": {"type": "boolean"},
      "data_quality": {"type": "integer"}
    }
  }
}`

	ContactsMapping = `{
  "mappings": {
    "properties": {
      "name": {"type": "text"},
      "number": {"type": "keyword"}
    }
  }
}`

	GenericBillsMapping = `{
  "mappings": {
    "properties": {
      "title": {"type": "text"},
      "icon_url": {"type": "keyword"},
      "id": {"type": "integer"},
      "request": {"type": "nested"}
    }
  }
}`

	UserCreditCardsMapping = `{
  "mappings": {
    "properties": {
      "biller_name": {"type": "text"},
      "biller_logo": {"type": "keyword"},
      "customer_id": {"type": "keyword"},
      "unique_bill_id": {"type": "keyword"}
    }
  }
}`

	ChatHistoryMapping = `{
  "mappings": {
    "properties": {
      "user_id": {"type": "keyword"},
      "session_id": {"type": "keyword"},
      "message": {"type": "text"},
      "response": {"type": "text"},
      "intent": {"type": "keyword"},
      "timestamp": {"type": "date"}
    }
  }
}`
)
