package pdf

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	billdomain "github.com/ormgarage/facturation/internal/bill/domain"
	clientdomain "github.com/ormgarage/facturation/internal/client/domain"
	appconfig "github.com/ormgarage/facturation/internal/config"
)

func sampleData() InvoiceData {
	return InvoiceData{
		Number:          "12",
		Date:            "05/03/2026",
		Validity:        "30 jours",
		ClientName:      "Ali Ben Salah",
		ClientPhone:     "22 333 444",
		ClientMatricule: "M.F: ____________",
		ClientCode:      "CL001",
		Items: []InvoiceItem{
			{Qty: 2, Name: "Vidange moteur", UnitPrice: "15.00", Total: "30.00"},
			{Qty: 1, Name: "Filtre à huile", UnitPrice: "8.50", Total: "8.50"},
		},
		Subtotal:       "38.50",
		Tax:            "7.32",
		Total:          "45.82",
		ApprovalAmount: "45.82 dinars",
	}
}

func TestGenerateInvoiceProducesPDF(t *testing.T) {
	provider := New(appconfig.Config{
		CompanyName:    "ORM",
		CompanyTagline: "réparation et maintenance",
		LogoPath:       "testdata/does-not-exist.png",
	})

	reader, err := provider.GenerateInvoice(context.Background(), sampleData())
	require.NoError(t, err)

	document, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.Greater(t, len(document), 4)
	require.Equal(t, "%PDF", string(document[:4]))
}

func TestGenerateInvoiceWithoutItems(t *testing.T) {
	provider := New(appconfig.Config{CompanyName: "ORM"})

	data := sampleData()
	data.Items = nil

	reader, err := provider.GenerateInvoice(context.Background(), data)
	require.NoError(t, err)

	document, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.NotEmpty(t, document)
}

func TestInvoiceDataFromAggregate(t *testing.T) {
	date := time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC)
	aggregate := billdomain.Aggregate{
		Bill: billdomain.Bill{
			ID:    12,
			Date:  date,
			Total: decimal.RequireFromString("38.50"),
		},
		Items: []billdomain.BillItem{
			{Name: "Vidange moteur", Quantity: 2, UnitPrice: decimal.RequireFromString("15.00"), Price: decimal.RequireFromString("30.00")},
			{Name: "Filtre à huile", Quantity: 1, UnitPrice: decimal.RequireFromString("8.50"), Price: decimal.RequireFromString("8.50")},
		},
		Client: &clientdomain.Client{Name: "Ali Ben Salah", Phone: "22 333 444", Code: "CL001"},
	}

	data := InvoiceDataFromAggregate(aggregate)

	require.Equal(t, "12", data.Number)
	require.Equal(t, "05/03/2026", data.Date)
	require.Equal(t, "30 jours", data.Validity)
	require.Equal(t, "Ali Ben Salah", data.ClientName)
	require.Equal(t, "CL001", data.ClientCode)
	require.Len(t, data.Items, 2)
	require.EqualValues(t, 2, data.Items[0].Qty)
	require.Equal(t, "15.00", data.Items[0].UnitPrice)
	require.Equal(t, "30.00", data.Items[0].Total)
	require.Equal(t, "38.50", data.Subtotal)
	require.Equal(t, "7.32", data.Tax)
	require.Equal(t, "45.82", data.Total)
	require.Equal(t, "45.82 dinars", data.ApprovalAmount)
}

func TestInvoiceDataWithoutClient(t *testing.T) {
	aggregate := billdomain.Aggregate{
		Bill: billdomain.Bill{
			ID:    3,
			Date:  time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
			Total: decimal.RequireFromString("10.00"),
		},
	}

	data := InvoiceDataFromAggregate(aggregate)
	require.Empty(t, data.ClientName)
	require.Empty(t, data.ClientCode)
	require.Equal(t, "3", data.Number)
}
