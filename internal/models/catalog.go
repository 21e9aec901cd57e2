package models

// Product is one entry of the fixed catalog. Unit prices are drawn
// per-order from [MinPrice, MaxPrice].
type Product struct {
	ID       string
	Name     string
	MinPrice float64
	MaxPrice float64
}

// Catalog is the fixed set of products orders are drawn from.
var Catalog = []Product{
	{ID: "PROD-001", Name: "Wireless Bluetooth Headphones", MinPrice: 29.99, MaxPrice: 199.99},
	{ID: "PROD-002", Name: "Smart Watch", MinPrice: 99.99, MaxPrice: 499.99},
	{ID: "PROD-003", Name: "Laptop Stand", MinPrice: 19.99, MaxPrice: 89.99},
	{ID: "PROD-004", Name: "USB-C Cable", MinPrice: 9.99, MaxPrice: 29.99},
	{ID: "PROD-005", Name: "Mechanical Keyboard", MinPrice: 59.99, MaxPrice: 299.99},
	{ID: "PROD-006", Name: "Wireless Mouse", MinPrice: 19.99, MaxPrice: 129.99},
	{ID: "PROD-007", Name: "Phone Case", MinPrice: 14.99, MaxPrice: 49.99},
	{ID: "PROD-008", Name: "Portable Charger", MinPrice: 24.99, MaxPrice: 79.99},
	{ID: "PROD-009", Name: "LED Desk Lamp", MinPrice: 29.99, MaxPrice: 89.99},
	{ID: "PROD-010", Name: "Webcam HD", MinPrice: 39.99, MaxPrice: 199.99},
	{ID: "PROD-011", Name: "External Hard Drive", MinPrice: 49.99, MaxPrice: 199.99},
	{ID: "PROD-012", Name: "Monitor 27 inch", MinPrice: 199.99, MaxPrice: 699.99},
	{ID: "PROD-013", Name: "Gaming Chair", MinPrice: 149.99, MaxPrice: 499.99},
	{ID: "PROD-014", Name: "Desk Organizer", MinPrice: 12.99, MaxPrice: 39.99},
	{ID: "PROD-015", Name: "Bluetooth Speaker", MinPrice: 29.99, MaxPrice: 249.99},
}

// PaymentMethods is the enumerated set orders pick from.
var PaymentMethods = []string{
	"credit_card",
	"debit_card",
	"paypal",
	"apple_pay",
	"google_pay",
	"bank_transfer",
}
