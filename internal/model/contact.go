package model

// Contact is one entry in a user's imported address book.
type Contact struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}
