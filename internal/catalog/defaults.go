package catalog

import "github.com/fairyhunter13/shopping-cart/internal/model"

func weight(w float64) *float64 { return &w }

// DefaultRecords is the seed catalog written when no catalog document exists.
func DefaultRecords() []model.ProductRecord {
	return []model.ProductRecord{
		{Type: "physical", ProductID: "P001", Name: "Bluetooth Headphones", Price: 1599.00, QuantityAvailable: 10, Weight: weight(0.25)},
		{Type: "physical", ProductID: "P002", Name: "Laptop Backpack", Price: 999.00, QuantityAvailable: 15, Weight: weight(1.0)},
		{Type: "physical", ProductID: "P003", Name: "Water Bottle (1L)", Price: 299.00, QuantityAvailable: 25, Weight: weight(0.5)},
		{Type: "physical", ProductID: "P004", Name: "Wireless Mouse", Price: 499.00, QuantityAvailable: 20, Weight: weight(0.15)},
		{Type: "physical", ProductID: "P005", Name: "Notebook Set (Pack of 3)", Price: 199.00, QuantityAvailable: 30, Weight: weight(0.6)},
		{Type: "digital", ProductID: "D001", Name: "E-Book: Learn Python", Price: 349.00, QuantityAvailable: 100},
		{Type: "digital", ProductID: "D002", Name: "E-Book: Data Structures", Price: 399.00, QuantityAvailable: 100},
		{Type: "digital", ProductID: "D003", Name: "Music Album (MP3)", Price: 249.00, QuantityAvailable: 200},
		{Type: "physical", ProductID: "P006", Name: "Power Bank (10000 mAh)", Price: 1299.00, QuantityAvailable: 18, Weight: weight(0.3)},
		{Type: "physical", ProductID: "P007", Name: "USB Flash Drive (64GB)", Price: 549.00, QuantityAvailable: 40, Weight: weight(0.05)},
		{Type: "physical", ProductID: "P008", Name: "Desk Organizer", Price: 349.00, QuantityAvailable: 22, Weight: weight(0.9)},
		{Type: "digital", ProductID: "D004", Name: "Online Course: Java Programming", Price: 999.00, QuantityAvailable: 50},
		{Type: "physical", ProductID: "P009", Name: "Table Lamp (LED)", Price: 799.00, QuantityAvailable: 12, Weight: weight(1.2)},
		{Type: "digital", ProductID: "D005", Name: "Stock Market Guide (PDF)", Price: 299.00, QuantityAvailable: 150},
		{Type: "physical", ProductID: "P010", Name: "Mobile Stand", Price: 149.00, QuantityAvailable: 35, Weight: weight(0.1)},
		{Type: "physical", ProductID: "P011", Name: "Game of thrones", Price: 349.00, QuantityAvailable: 35, Weight: weight(1.5)},
		{Type: "digital", ProductID: "P012", Name: "Hairdresser", Price: 799.00, QuantityAvailable: 35},
	}
}
