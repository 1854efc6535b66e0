package seed

import "github.com/twidpay/intellisearch/internal/model"

func creditCard(title, iconURL string, id int) model.GenericBill {
	return model.GenericBill{
		Title:   title,
		IconURL: iconURL,
		ID:      id,
		Request: []model.BillRequestItem{{BillerID: id, CategoryID: 22, Screen: "screen2"}},
	}
}

func electricityBiller(name, logo string, id int) model.GenericBill {
	return model.GenericBill{
		BillerName: name,
		BillerLogo: logo,
		ID:         id,
		Request:    []model.BillRequestItem{{BillerID: id, CategoryID: 4, Screen: "screen2"}},
	}
}

const (
	creditCardDefaultIcon  = "https://cdn.twidpay.com/co/mobile_app_images/bbps/biller/credit_card_default.svg"
	electricityDefaultLogo = "https://static.twidpay.com/co/mobile_app_images/bbps/biller/electricity_default.svg"
	billerLogoBase         = "https://cdn.twidpay.com/co/mobile_app_images/bbps/biller/logo/"
)

// GenericBills is the shared biller catalog indexed at bootstrap.
// Credit-card entries use the "title" field, electricity entries use
// "biller_name"; downstream code handles both.
func GenericBills() []model.GenericBill {
	return []model.GenericBill{
		creditCard("AU Bank Credit Card", billerLogoBase+"AU_SMALL_FINANCE_BANK_LTD.png", 22872),
		creditCard("Axis Bank Credit Card", billerLogoBase+"AXIS_BANK_LTD.png", 22883),
		creditCard("Bank of Maharashtra Credit Card", creditCardDefaultIcon, 22889),
		creditCard("BoB Credit Card", billerLogoBase+"BANK_OF_BARODA.png", 19639),
		creditCard("Canara Credit Card", creditCardDefaultIcon, 22874),
		creditCard("DBS Bank Credit Card", creditCardDefaultIcon, 22887),
		creditCard("Federal Bank Credit Card", billerLogoBase+"FEDERAL_BANK_LTD.png", 22870),
		creditCard("HDFC Bank Pixel Credit Card", creditCardDefaultIcon, 23279),
		creditCard("HDFC Credit Card", billerLogoBase+"HDFC_BANK_LTD.png", 22881),
		creditCard("HSBC Credit Card", creditCardDefaultIcon, 22885),
		creditCard("ICICI Credit card", billerLogoBase+"ICICI_BANK_LTD.png", 22877),
		creditCard("IDBI Bank Credit Card", creditCardDefaultIcon, 22875),
		creditCard("IDFC FIRST Bank Credit Card", billerLogoBase+"IDFC_FIRST_BANK_LTD.png", 22882),
		creditCard("IndusInd Credit Card", billerLogoBase+"INDUSIND_BANK_LTD.png", 22873),
		creditCard("Kotak Mahindra Bank Credit Card", billerLogoBase+"KOTAK_MAHINDRA_BANK_LTD.png", 22869),
		creditCard("Punjab National Bank Credit Card", creditCardDefaultIcon, 22879),
		creditCard("SBI Card", billerLogoBase+"SBI_Cards.png", 22871),
		creditCard("Union Bank of India Credit Card", billerLogoBase+"UNION_BANK_OF_INDIA.png", 22878),
		creditCard("Yes Bank Credit Card", billerLogoBase+"YES_BANK_LTD.png", 22884),
		electricityBiller("Bangalore Electricity Supply Co. Ltd (BESCOM)", electricityDefaultLogo, 48),
		electricityBiller("B.E.S.T Mumbai", electricityDefaultLogo, 49),
		electricityBiller("BSES Rajdhani Power Limited", billerLogoBase+"BSES_Rajdhani_Power_Limited.png", 50),
		electricityBiller("BSES Yamuna Power Limited", billerLogoBase+"BSES_Yamuna_Power_Limited.png", 51),
		electricityBiller("Calcutta Electric Supply Corporation (CESC)", billerLogoBase+"CESC_Limited.png", 52),
		electricityBiller("Chhattisgarh State Power Distribution Co. Ltd", electricityDefaultLogo, 53),
		electricityBiller("Maharashtra State Electricity Distbn Co Ltd", electricityDefaultLogo, 64),
		electricityBiller("Meghalaya Power Dist Corp Ltd", electricityDefaultLogo, 66),
		electricityBiller("Punjab State Power Corporation Ltd (PSPCL)", electricityDefaultLogo, 72),
		electricityBiller("Tata Power - Delhi", billerLogoBase+"Tata_Power_Company_Limited.png", 76),
		electricityBiller("Tata Power - Mumbai", billerLogoBase+"Tata_Power_Company_Limited.png", 77),
		electricityBiller("Tamil Nadu Electricity Board (TNEB)", electricityDefaultLogo, 78),
		electricityBiller("Tripura Electricity Corp Ltd", electricityDefaultLogo, 83),
		electricityBiller("Uttarakhand Power Corporation Limited", electricityDefaultLogo, 86),
		electricityBiller("Uttar Pradesh Power Corp Ltd (UPPCL) - URBAN", electricityDefaultLogo, 87),
		electricityBiller("Uttar Pradesh Power Corp Ltd (UPPCL) - RURAL", electricityDefaultLogo, 88),
		electricityBiller("Assam Power Distribution Company Ltd (NON-RAPDR)", electricityDefaultLogo, 90),
		electricityBiller("New Delhi Municipal Council (NDMC) - Electricity", electricityDefaultLogo, 96),
		electricityBiller("West Bengal State Electricity Distribution Co. Ltd (WBSEDCL)", electricityDefaultLogo, 97),
		electricityBiller("Sikkim Power - RURAL", electricityDefaultLogo, 99),
		electricityBiller("Adani Electricity Mumbai Limited", billerLogoBase+"Adani_Power.png", 103),
		electricityBiller("Sikkim Power - URBAN", electricityDefaultLogo, 109),
		electricityBiller("CESU, Odisha", electricityDefaultLogo, 110),
		electricityBiller("Kerala State Electricity Board Ltd. (KSEBL)", electricityDefaultLogo, 111),
		electricityBiller("Himachal Pradesh State Electricity Board", electricityDefaultLogo, 113),
		electricityBiller("Jammu and Kashmir Power Development Department", electricityDefaultLogo, 375),
		electricityBiller("West Bengal Electricity", electricityDefaultLogo, 19991),
	}
}

// UserCreditCards are demo saved cards, all for the same customer.
func UserCreditCards() []model.UserCreditCard {
	return []model.UserCreditCard{
		{
			BillerName: "HDFC Credit Card",
			Subtitle:   "XXXX 9840",
			BillerLogo: billerLogoBase + "HDFC_BANK_LTD.png",
			CustomerID: "40321617",
			Request:    model.CardRequest{UniqueBillID: "94"},
		},
		{
			BillerName: "HDFC Credit Card",
			Subtitle:   "XXXX 0917",
			BillerLogo: billerLogoBase + "SBI_Cards.png",
			CustomerID: "40321617",
			Request:    model.CardRequest{UniqueBillID: "40239"},
		},
		{
			BillerName: "Axis Bank Credit Card",
			Subtitle:   "XXXX 8705",
			BillerLogo: billerLogoBase + "AXIS_BANK_LTD.png",
			CustomerID: "40321617",
			Request:    model.CardRequest{UniqueBillID: "95"},
		},
		{
			BillerName: "SBI Card",
			Subtitle:   "XXXX 0713",
			BillerLogo: billerLogoBase + "SBI_Cards.png",
			CustomerID: "40321617",
			Request:    model.CardRequest{UniqueBillID: "96"},
		},
	}
}

// Example is one baseline few-shot sample before storage metadata is
// attached.
type Example struct {
	Query         string
	Intent        model.Intent
	ExtractedData map[string]interface{}
}

// TrainingExamples is the baseline few-shot corpus, three examples per
// classifiable intent.
func TrainingExamples() []Example {
	return []Example{
		{"Send 500 rupees to Raj for dinner", model.IntentPayToPerson,
			map[string]interface{}{"payee_name": "Raj", "amount": 500, "note": "dinner"}},
		{"Transfer ₹1000 to Priya", model.IntentPayToPerson,
			map[string]interface{}{"payee_name": "Priya", "amount": 1000, "note": nil}},
		{"Pay Amit 2500 for the concert tickets", model.IntentPayToPerson,
			map[string]interface{}{"payee_name": "Amit", "amount": 2500, "note": "concert tickets"}},
		{"Pay my electricity bill", model.IntentPayBill,
			map[string]interface{}{"bill_type": "electricity", "biller_name": nil, "amount": nil}},
		{"Pay Reliance water bill of 780 rupees", model.IntentPayBill,
			map[string]interface{}{"bill_type": "water", "biller_name": "Reliance", "amount": 780}},
		{"Pay my Airtel mobile bill", model.IntentPayBill,
			map[string]interface{}{"bill_type": "mobile", "biller_name": "Airtel", "amount": nil}},
		{"How many reward points do I have?", model.IntentCheckRewards,
			map[string]interface{}{"reward_type": "points"}},
		{"Check my cashback balance", model.IntentCheckRewards,
			map[string]interface{}{"reward_type": "cashback"}},
		{"Show my total rewards", model.IntentCheckRewards,
			map[string]interface{}{"reward_type": nil}},
		{"Show me my transactions from last week", model.IntentTransactionHistory,
			map[string]interface{}{"time_period": "last week", "transaction_type": nil}},
		{"Get my payment history for September", model.IntentTransactionHistory,
			map[string]interface{}{"time_period": "September", "transaction_type": "payment"}},
		{"View recent transactions", model.IntentTransactionHistory,
			map[string]interface{}{"time_period": "recent", "transaction_type": nil}},
		{"What's the weather like today?", model.IntentOther, map[string]interface{}{}},
		{"Tell me a joke", model.IntentOther, map[string]interface{}{}},
		{"What are your operating hours?", model.IntentOther, map[string]interface{}{}},
	}
}
