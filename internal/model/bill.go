package model

// BillRequestItem is one routing entry in a generic biller record.
// CategoryID 22 marks credit-card billers, 4 electricity.
type BillRequestItem struct {
	BillerID   int    `json:"biller_id"`
	CategoryID int    `json:"category_id"`
	Screen     string `json:"screen"`
}

// GenericBill is a shared catalog entry. The upstream catalog is
// inconsistent about the display-name field: credit-card entries use
// "title", utility entries use "biller_name". Both are kept and
// DisplayName picks whichever is set.
type GenericBill struct {
	Title      string            `json:"title,omitempty"`
	BillerName string            `json:"biller_name,omitempty"`
	IconURL    string            `json:"icon_url,omitempty"`
	BillerLogo string            `json:"biller_logo,omitempty"`
	ID         int               `json:"id"`
	Request    []BillRequestItem `json:"request"`
}

func (b GenericBill) DisplayName() string {
	if b.Title != "" {
		return b.Title
	}
	return b.BillerName
}

// HasCategory reports whether any request item carries the category.
func (b GenericBill) HasCategory(categoryID int) bool {
	for _, item := range b.Request {
		if item.CategoryID == categoryID {
			return true
		}
	}
	return false
}

// CardRequest holds the per-card routing payload. UniqueBillID is the
// dedup key; cards without one are never collapsed.
type CardRequest struct {
	UniqueBillID string `json:"unique_bill_id,omitempty"`
}

// UserCreditCard is one stored card for one user. CustomerID is the
// ownership key used in term queries.
type UserCreditCard struct {
	BillerName string      `json:"biller_name"`
	Subtitle   string      `json:"subtitle,omitempty"`
	BillerLogo string      `json:"biller_logo,omitempty"`
	CustomerID string      `json:"customer_id"`
	Request    CardRequest `json:"request"`
}
