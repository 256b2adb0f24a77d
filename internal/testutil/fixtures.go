package testutil

import "github.com/Veraticus/akihabara-market/internal/model"

// SampleProducts returns a small catalogue for tests.
func SampleProducts() []model.Product {
	return []model.Product{
		{Name: "Anya Forger Figure", Category: "Figure", Price: 59.95, Stock: 8},
		{Name: "Chainsaw Man Manga Vol. 1", Category: "Manga", Price: 9.99, Stock: 20},
		{Name: "Totoro Keychain", Category: "Keychain", Price: 4.5, Stock: 40},
	}
}

// SampleCustomers returns registered customers for tests.
func SampleCustomers() []model.Customer {
	return []model.Customer{
		{Name: "Sakura Haruno", Email: "sakura@example.com", Phone: "600123456"},
		{Name: "Light Yagami", Email: "light@example.jp", Phone: "+819012345678"},
	}
}
