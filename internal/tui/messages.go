package tui

import (
	"github.com/Veraticus/akihabara-market/internal/model"
)

// Data loading messages.
type productsLoadedMsg struct {
	err      error
	query    string
	products []model.Product
}

type customersLoadedMsg struct {
	err       error
	customers []model.Customer
}

// Write results.
type savedMsg struct {
	err     error
	name    string
	tab     Tab
	created bool
}

type deletedMsg struct {
	err  error
	name string
	tab  Tab
}

// Assistant results.
type descriptionMsg struct {
	err     error
	product string
	text    string
}

// categorySuggestedMsg answers a suggestion request from the form with
// sequence number formSeq.
type categorySuggestedMsg struct {
	err      error
	name     string
	category string
	formSeq  int
}
