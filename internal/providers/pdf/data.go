package pdf

import (
	"strconv"

	billdomain "github.com/ormgarage/facturation/internal/bill/domain"
	"github.com/ormgarage/facturation/internal/money"
)

// InvoiceDataFromAggregate maps a resolved bill aggregate to the renderer
// view. The invoice date comes from the bill, never from the wall clock.
func InvoiceDataFromAggregate(aggregate billdomain.Aggregate) InvoiceData {
	items := make([]InvoiceItem, 0, len(aggregate.Items))
	for _, item := range aggregate.Items {
		items = append(items, InvoiceItem{
			Qty:       item.Quantity,
			Name:      item.Name,
			UnitPrice: money.Format(item.UnitPrice),
			Total:     money.Format(item.Price),
		})
	}

	data := InvoiceData{
		Number:          strconv.FormatInt(aggregate.ID, 10),
		Date:            aggregate.Date.Format("02/01/2006"),
		Validity:        "30 jours",
		ClientMatricule: "M.F: ____________",
		Items:           items,
		Subtotal:        money.Format(aggregate.Total),
		Tax:             money.Format(money.VAT(aggregate.Total)),
		Total:           money.Format(money.WithVAT(aggregate.Total)),
		ApprovalAmount:  money.Format(money.WithVAT(aggregate.Total)) + " dinars",
	}

	if aggregate.Client != nil {
		data.ClientName = aggregate.Client.Name
		data.ClientPhone = aggregate.Client.Phone
		data.ClientCode = aggregate.Client.Code
	}

	return data
}
