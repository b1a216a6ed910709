// Package pdf renders invoices as fixed-layout PDF documents.
package pdf

import (
	"context"
	"io"
)

// Provider materializes an invoice document for a fully-resolved bill view.
type Provider interface {
	GenerateInvoice(ctx context.Context, data InvoiceData) (io.Reader, error)
}

// InvoiceData is the pre-formatted view consumed by the renderer. All amounts
// carry exactly two decimals.
type InvoiceData struct {
	Number   string
	Date     string
	Validity string

	ClientName      string
	ClientPhone     string
	ClientMatricule string
	ClientCode      string

	Items []InvoiceItem

	Subtotal string
	Tax      string
	Total    string

	// ApprovalAmount is the literal restatement of the grand total, e.g.
	// "35.70 dinars".
	ApprovalAmount string
}

// InvoiceItem is one rendered table row.
type InvoiceItem struct {
	Qty       int64
	Name      string
	UnitPrice string
	Total     string
}
