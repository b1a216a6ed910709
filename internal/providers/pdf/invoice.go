package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appconfig "github.com/ormgarage/facturation/internal/config"
)

var accentRed = &props.Color{Red: 200, Green: 0, Blue: 0}

type MarotoProvider struct {
	companyName    string
	companyTagline string
	logoPath       string
}

func New(cfg appconfig.Config) Provider {
	return &MarotoProvider{
		companyName:    cfg.CompanyName,
		companyTagline: cfg.CompanyTagline,
		logoPath:       cfg.LogoPath,
	}
}

// GenerateInvoice lays out the fixed one-page invoice. Same input yields the
// same document.
func (p *MarotoProvider) GenerateInvoice(ctx context.Context, data InvoiceData) (io.Reader, error) {
	_ = ctx

	cfg := config.NewBuilder().Build()
	m := maroto.New(cfg)

	// Header band: logo (or drawn emblem) left, separating rule right.
	m.AddRow(22,
		p.emblemCol(),
		col.New(8).Add(
			line.New(props.Line{SizePercent: 95, OffsetPercent: 30}),
			line.New(props.Line{SizePercent: 95, OffsetPercent: 50}),
		),
	)

	// Invoice metadata left, bordered client box right.
	m.AddRow(40,
		col.New(6).Add(
			text.New("FACTURE N°:", props.Text{Style: fontstyle.Bold, Size: 11, Top: 2}),
			text.New(data.Number, props.Text{Size: 11, Top: 2, Left: 35}),
			text.New("DATE:", props.Text{Style: fontstyle.Bold, Size: 11, Top: 10}),
			text.New(data.Date, props.Text{Size: 11, Top: 10, Left: 35}),
			text.New("VALIDITE:", props.Text{Style: fontstyle.Bold, Size: 11, Top: 18}),
			text.New(data.Validity, props.Text{Size: 11, Top: 18, Left: 35}),
		),
		col.New(6).WithStyle(&props.Cell{BorderType: border.Full}).Add(
			text.New("CLIENT:", props.Text{Style: fontstyle.Bold, Size: 11, Top: 2, Left: 2, Color: accentRed}),
			text.New(data.ClientName, props.Text{Size: 9, Top: 10, Left: 2}),
			text.New(data.ClientPhone, props.Text{Size: 9, Top: 16, Left: 2}),
			text.New(data.ClientMatricule, props.Text{Size: 9, Top: 22, Left: 2}),
			text.New("CODE CLIENT:", props.Text{Style: fontstyle.Bold, Size: 9, Top: 30, Left: 2}),
			text.New(data.ClientCode, props.Text{Size: 9, Top: 30, Left: 32}),
		),
	)

	m.AddRow(6, col.New(12))

	// Line-items table.
	m.AddRow(8,
		text.NewCol(2, "QTE", props.Text{Style: fontstyle.Bold, Size: 10}),
		text.NewCol(6, "DESIGNATION", props.Text{Style: fontstyle.Bold, Size: 10}),
		text.NewCol(2, "P.U HT", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
		text.NewCol(2, "P.T HT", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
	)
	m.AddRow(2, line.NewCol(12))

	for _, item := range data.Items {
		m.AddRow(7,
			text.NewCol(2, fmt.Sprintf("%d", item.Qty), props.Text{Size: 10}),
			text.NewCol(6, item.Name, props.Text{Size: 10}),
			text.NewCol(2, item.UnitPrice, props.Text{Size: 10, Align: align.Right}),
			text.NewCol(2, item.Total, props.Text{Size: 10, Align: align.Right}),
		)
	}
	m.AddRow(2, line.NewCol(12))

	m.AddRow(4, col.New(12))

	// Totals box.
	p.totalsRow(m, "PRIX TOTAL HT:", data.Subtotal, false)
	p.totalsRow(m, "TVA 19%:", data.Tax, false)
	p.totalsRow(m, "TOTAL TTC:", data.Total, true)

	m.AddRow(8, col.New(12))

	// Approval statement.
	m.AddRow(6,
		text.NewCol(12, "ARRETÉE LA PRÉSENTE FACTURE A LA SOMME DE :", props.Text{Size: 10}),
	)
	m.AddRow(6,
		text.NewCol(12, data.ApprovalAmount, props.Text{Size: 10}),
	)

	// Footer rule + closing line.
	m.AddRow(4, line.NewCol(12))
	m.AddRow(8,
		text.NewCol(12, "MERCI POUR VOTRE CONFIANCE !", props.Text{
			Style: fontstyle.Italic,
			Size:  10,
			Align: align.Center,
			Color: accentRed,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}

// emblemCol returns the logo image when the asset exists, or a drawn emblem
// fallback.
func (p *MarotoProvider) emblemCol() core.Col {
	if p.logoAvailable() {
		return image.NewFromFileCol(4, p.logoPath, props.Rect{Percent: 85})
	}
	return col.New(4).Add(
		text.New(p.companyName, props.Text{Style: fontstyle.Bold, Size: 20}),
		text.New(p.companyTagline, props.Text{Size: 9, Top: 11}),
	)
}

func (p *MarotoProvider) logoAvailable() bool {
	info, err := os.Stat(p.logoPath)
	return err == nil && !info.IsDir()
}

func (p *MarotoProvider) totalsRow(m core.Maroto, label, value string, bold bool) {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	m.AddRow(8,
		col.New(6),
		text.NewCol(4, label, props.Text{Style: fontstyle.Bold, Size: 11, Left: 2, Top: 1}).
			WithStyle(&props.Cell{BorderType: border.Full}),
		text.NewCol(2, value, props.Text{Style: style, Size: 11, Align: align.Right, Top: 1}).
			WithStyle(&props.Cell{BorderType: border.Full}),
	)
}
