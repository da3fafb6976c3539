// Package reports provides read-only aggregates for the dashboard and
// per-product sales history.
package reports

import (
	"time"

	"billbook/internal/core/id"
	"billbook/internal/core/types"
)

// DashboardSummary holds the front-page figures.
type DashboardSummary struct {
	TotalSales   types.Money `json:"totalSales"`
	TodaySales   types.Money `json:"todaySales"`
	MonthlySales types.Money `json:"monthlySales"`

	TotalBills     int64       `json:"totalBills"`
	TotalCustomers int64       `json:"totalCustomers"`
	AverageBill    types.Money `json:"averageBill"`

	// LowStockItems counts items with stock below LowStockThreshold.
	LowStockItems int64 `json:"lowStockItems"`

	// InventoryValue is Σ(price × stock) over the item catalog.
	InventoryValue types.Money `json:"inventoryValue"`

	RecentBills []RecentBill `json:"recentBills"`
}

// RecentBill is a dashboard row for the latest invoices.
type RecentBill struct {
	ID           id.ID       `db:"id" json:"id"`
	Number       string      `db:"number" json:"number"`
	CustomerName string      `db:"customer_name" json:"customerName"`
	TotalAmount  types.Money `db:"total_amount" json:"totalAmount"`
	CreatedAt    time.Time   `db:"created_at" json:"createdAt"`
}

// ProductSale is one sale of a given item, newest first.
type ProductSale struct {
	Date          time.Time   `db:"date" json:"date"`
	InvoiceNumber string      `db:"invoice_number" json:"invoiceNumber"`
	CustomerName  string      `db:"customer_name" json:"customerName"`
	Quantity      int         `db:"quantity" json:"quantity"`
	Price         types.Money `db:"price" json:"price"`
	Total         types.Money `db:"total" json:"total"`
}

// LowStockThreshold is the dashboard's "running low" boundary.
const LowStockThreshold = 10

// RecentBillsLimit caps the dashboard's recent invoice list.
const RecentBillsLimit = 5
