package utils

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"fleetstock/models"
)

var reportTemplate = template.Must(template.New("expense_report").Parse(`
<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
@page { size: A4; margin: 20px; }
body { font-family: Arial, Helvetica, sans-serif; font-size: 12px; margin: 0; padding: 0; }
h1 { font-size: 18px; }
table { width: 100%; border-collapse: collapse; }
th, td { border: 1px solid #999; padding: 4px 6px; text-align: left; }
th { background: #eee; }
td.amount, th.amount { text-align: right; }
tfoot td { font-weight: bold; }
</style>
</head>
<body>
<h1>Expense Report for {{.Period}}</h1>
<table>
<thead>
<tr><th>Date</th><th>Title</th><th>Category</th><th class="amount">Amount</th></tr>
</thead>
<tbody>
{{range .Rows}}
<tr>
<td>{{.Date}}</td><td>{{.Title}}</td><td>{{.Category}}</td><td class="amount">{{.Amount}}</td>
</tr>
{{end}}
</tbody>
<tfoot>
<tr><td colspan="3">Total ({{.Count}} expenses)</td><td class="amount">{{.Total}}</td></tr>
</tfoot>
</table>
</body>
</html>`))

type reportRow struct {
	Date     string
	Title    string
	Category string
	Amount   string
}

type reportData struct {
	Period string
	Rows   []reportRow
	Count  int
	Total  string
}

// GenerateExpenseReportPDF renders a monthly expense report to PDF with
// headless Chrome.
func GenerateExpenseReportPDF(ctx context.Context, period time.Time, expenses []*models.Expense) ([]byte, error) {
	data := reportData{
		Period: period.Format("January 2006"),
		Count:  len(expenses),
	}
	var total float64
	for _, e := range expenses {
		total += e.Amount
		data.Rows = append(data.Rows, reportRow{
			Date:     e.Date.Format("02-Jan-2006"),
			Title:    e.Title,
			Category: e.Category,
			Amount:   fmt.Sprintf("%.2f", e.Amount),
		})
	}
	data.Total = fmt.Sprintf("%.2f", total)

	var html bytes.Buffer
	if err := reportTemplate.Execute(&html, data); err != nil {
		return nil, err
	}

	// chromedp can only navigate to a URL, so stage the HTML in a temp file
	tmpHTML := filepath.Join(os.TempDir(), "expense_report_"+time.Now().Format("20060102150405")+".html")
	if err := os.WriteFile(tmpHTML, html.Bytes(), 0644); err != nil {
		return nil, err
	}
	defer os.Remove(tmpHTML)

	chromeCtx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	var pdfBuf []byte
	err := chromedp.Run(chromeCtx,
		chromedp.Navigate("file://"+tmpHTML),
		chromedp.Sleep(1*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}
