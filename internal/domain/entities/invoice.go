package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// InvoiceStatus represents the invoice lifecycle
type InvoiceStatus string

const (
	InvoiceDraft  InvoiceStatus = "DRAFT"
	InvoiceIssued InvoiceStatus = "ISSUED"
	InvoicePaid   InvoiceStatus = "PAID"
	InvoiceVoid   InvoiceStatus = "VOID"
)

// Invoice represents a customer invoice for completed service work.
// Totals are computed server-side; clients only supply the tax rate.
type Invoice struct {
	ID              uuid.UUID     `json:"id"`
	CustomerID      uuid.UUID     `json:"customerId"`
	ServiceRecordID uuid.UUID     `json:"serviceRecordId"`
	Number          string        `json:"number"`
	Subtotal        float64       `json:"subtotal"`
	TaxRate         float64       `json:"taxRate"`
	TaxAmount       float64       `json:"taxAmount"`
	Total           float64       `json:"total"`
	Status          InvoiceStatus `json:"status"`
	IssuedAt        time.Time     `json:"issuedAt"`
	PaidAt          null.Time     `json:"paidAt"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
	DeletedAt       *time.Time    `json:"-"`
}

// ComputeTotals recalculates tax and total from the subtotal
func (i *Invoice) ComputeTotals() {
	i.TaxAmount = i.Subtotal * i.TaxRate
	i.Total = i.Subtotal + i.TaxAmount
}

// CreateInvoiceInput represents input for issuing an invoice
type CreateInvoiceInput struct {
	ServiceRecordID string  `json:"serviceRecordId" binding:"required,uuid"`
	TaxRate         float64 `json:"taxRate" binding:"min=0,max=1"`
}
