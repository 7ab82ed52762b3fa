package document

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/isp_bookkeeping_app/internal/core/domain"
	portssvc "github.com/SscSPs/isp_bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/isp_bookkeeping_app/internal/utils"
	"github.com/go-pdf/fpdf"
)

const (
	fontFamily  = "Helvetica"
	pageWidth   = 210.0
	leftMargin  = 14.0
	rightEdge   = 196.0
	contentWide = rightEdge - leftMargin
)

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// PDFRenderer lays out invoices and reports as A4 PDFs.
type PDFRenderer struct {
	now func() time.Time
}

// NewPDFRenderer creates a renderer stamping documents with the current time.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{now: time.Now}
}

var _ portssvc.DocumentRenderer = (*PDFRenderer)(nil)

// page wraps fpdf with the UTF-8 to cp1252 translator the core fonts need.
type page struct {
	*fpdf.Fpdf
	tr func(string) string
}

func (r *PDFRenderer) newPage(title string) *page {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetCreator("isp-bookkeeping-app", true)
	pdf.SetCreationDate(r.now())
	pdf.SetMargins(leftMargin, 15, pageWidth-rightEdge)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()
	return &page{Fpdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (p *page) text(x, y float64, s string) {
	p.Text(x, y, p.tr(s))
}

// textRight places s so that it ends at x.
func (p *page) textRight(x, y float64, s string) {
	s = p.tr(s)
	p.Text(x-p.GetStringWidth(s), y, s)
}

func (p *page) textCenter(y float64, s string) {
	s = p.tr(s)
	p.Text((pageWidth-p.GetStringWidth(s))/2, y, s)
}

func (p *page) cell(w, h float64, s, border, align string, fill bool) {
	p.CellFormat(w, h, p.tr(s), border, 0, align, fill, 0, "")
}

// fit translates s and truncates it with an ellipsis so it fits in width w at the
// current font. The translated string is single-byte, so slicing bytes is safe.
func (p *page) fit(s string, w float64) string {
	s = p.tr(s)
	if p.GetStringWidth(s) <= w {
		return s
	}
	for len(s) > 0 && p.GetStringWidth(s+"...") > w {
		s = s[:len(s)-1]
	}
	return s + "..."
}

func (p *page) output(w io.Writer) error {
	if err := p.Error(); err != nil {
		return fmt.Errorf("failed to lay out pdf: %w", err)
	}
	if err := p.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

// monthLabel turns "2023-10" or "2023-10-15" into "Oktober 2023". Unparseable input is returned as is.
func monthLabel(date string) string {
	if len(date) < 7 {
		return date
	}
	year := date[:4]
	month, err := strconv.Atoi(date[5:7])
	if err != nil || month < 1 || month > 12 {
		return date
	}
	return monthNames[month-1] + " " + year
}

// RenderCustomerInvoice draws the monthly bill for one customer.
func (r *PDFRenderer) RenderCustomerInvoice(w io.Writer, inv domain.CustomerInvoice) error {
	s := inv.Settings
	c := inv.Customer
	p := r.newPage("Invoice " + c.Name)

	p.SetFont(fontFamily, "B", 18)
	p.text(leftMargin, 20, s.Name)
	p.SetFont(fontFamily, "", 10)
	p.text(leftMargin, 26, s.Address)
	p.text(leftMargin, 32, "Phone: "+s.Phone)

	p.SetFont(fontFamily, "B", 16)
	p.text(leftMargin, 50, "INVOICE TAGIHAN")

	p.SetFont(fontFamily, "", 12)
	p.text(leftMargin, 65, "Pelanggan: "+c.Name)
	p.text(leftMargin, 72, "No HP: "+c.Phone)
	p.text(leftMargin, 79, "Paket: "+string(c.Type))
	p.text(leftMargin, 86, "Bulan: "+monthLabel(inv.BillingDate))
	p.textRight(rightEdge, 65, "ID: "+c.ID)
	p.textRight(rightEdge, 72, fmt.Sprintf("Jatuh tempo: tgl %d", c.DueDate))

	p.SetLineWidth(0.5)
	p.Line(leftMargin, 95, rightEdge, 95)
	p.SetFont(fontFamily, "B", 12)
	p.text(leftMargin, 105, "Deskripsi")
	p.textRight(rightEdge, 105, "Nominal")
	p.Line(leftMargin, 110, rightEdge, 110)

	p.SetFont(fontFamily, "", 12)
	y := 120.0
	p.text(leftMargin, y, "Tagihan Internet "+string(c.Type))
	p.textRight(rightEdge, y, utils.FormatRupiah(c.MonthlyFee))
	if c.AccumulatedDebt.IsPositive() {
		y += 8
		p.text(leftMargin, y, "Tunggakan bulan sebelumnya")
		p.textRight(rightEdge, y, utils.FormatRupiah(c.AccumulatedDebt))
	}

	y += 5
	p.SetLineWidth(0.2)
	p.Line(leftMargin, y, rightEdge, y)
	y += 7
	p.SetFont(fontFamily, "B", 12)
	p.text(leftMargin, y, "Total Tagihan")
	p.textRight(rightEdge, y, utils.FormatRupiah(inv.TotalDue))

	p.SetFont(fontFamily, "", 12)
	y += 20
	p.text(leftMargin, y, "Silahkan transfer ke:")
	p.text(leftMargin, y+7, s.BankName+" - "+s.AccountNumber)
	p.text(leftMargin, y+14, "a.n "+s.AccountHolder)

	return p.output(w)
}

// RenderMonthlyReport draws the monthly financial report with the investor shares and a
// transaction table, followed by the director's signature block.
func (r *PDFRenderer) RenderMonthlyReport(w io.Writer, report domain.MonthlyReport, s domain.CompanySettings) error {
	p := r.newPage("Laporan Keuangan " + report.Period)

	p.SetFont(fontFamily, "B", 22)
	p.SetTextColor(40, 40, 40)
	p.textCenter(20, strings.ToUpper(s.Name))
	p.SetFont(fontFamily, "", 10)
	p.textCenter(28, s.Address)
	p.textCenter(33, "Telp: "+s.Phone)
	p.SetLineWidth(0.5)
	p.Line(10, 38, 200, 38)

	p.SetFont(fontFamily, "B", 16)
	p.textCenter(50, "LAPORAN KEUANGAN BULANAN")
	p.SetFont(fontFamily, "", 12)
	p.textCenter(56, "Periode: "+monthLabel(report.Period))

	p.text(leftMargin, 70, "RINGKASAN:")
	p.text(leftMargin, 78, "Total Pemasukan: "+utils.FormatRupiah(report.Summary.Income))
	p.text(leftMargin, 86, "Total Pengeluaran: "+utils.FormatRupiah(report.Summary.Expense))
	p.SetFont(fontFamily, "B", 12)
	p.text(leftMargin, 94, "Laba Bersih: "+utils.FormatRupiah(report.Summary.Profit))
	p.SetFont(fontFamily, "", 12)

	y := 110.0
	p.text(leftMargin, y, "ESTIMASI BAGI HASIL:")
	for _, share := range report.Shares {
		y += 8
		p.text(20, y, fmt.Sprintf("- %s (%s%%): %s",
			share.Investor.Name, share.Investor.SharePercentage.String(), utils.FormatRupiah(share.Amount)))
	}

	y += 15
	p.text(leftMargin, y, "RINCIAN TRANSAKSI:")
	p.SetXY(leftMargin, y+5)
	drawTransactionTable(p, report.Transactions)

	y = p.GetY() + 30
	if y > 250 {
		p.AddPage()
		y = 30
	}
	p.SetFont(fontFamily, "", 12)
	p.text(140, y, "Mengetahui,")
	p.text(140, y+5, "Direktur Utama")
	p.SetFont(fontFamily, "B", 12)
	p.text(140, y+30, "( "+s.DirectorName+" )")

	return p.output(w)
}

var transactionColumns = []struct {
	title string
	width float64
	align string
}{
	{"No", 10, "C"},
	{"Tgl", 24, "C"},
	{"Deskripsi", 66, "L"},
	{"Masuk", 30, "R"},
	{"Keluar", 30, "R"},
	{"Metode", 22, "C"},
}

func drawTransactionTable(p *page, txs []domain.Transaction) {
	const rowHeight = 7.0

	header := func() {
		p.SetFont(fontFamily, "B", 10)
		p.SetFillColor(15, 23, 42)
		p.SetTextColor(255, 255, 255)
		for _, col := range transactionColumns {
			p.cell(col.width, rowHeight, col.title, "1", "C", true)
		}
		p.Ln(rowHeight)
		p.SetFont(fontFamily, "", 9)
		p.SetTextColor(40, 40, 40)
	}

	header()
	_, pageHeight := p.GetPageSize()
	_, _, _, bottom := p.GetMargins()
	for i, tx := range txs {
		if p.GetY()+rowHeight > pageHeight-bottom {
			p.AddPage()
			header()
		}
		in, out := "-", "-"
		switch tx.Type {
		case domain.Income:
			in = utils.FormatRupiah(tx.Amount)
		case domain.Expense:
			out = utils.FormatRupiah(tx.Amount)
		}
		cols := transactionColumns
		p.cell(cols[0].width, rowHeight, strconv.Itoa(i+1), "1", cols[0].align, false)
		p.cell(cols[1].width, rowHeight, tx.Date, "1", cols[1].align, false)
		p.CellFormat(cols[2].width, rowHeight, p.fit(tx.Description, cols[2].width-2), "1", 0, cols[2].align, false, 0, "")
		p.cell(cols[3].width, rowHeight, in, "1", cols[3].align, false)
		p.cell(cols[4].width, rowHeight, out, "1", cols[4].align, false)
		p.cell(cols[5].width, rowHeight, string(tx.Method), "1", cols[5].align, false)
		p.Ln(rowHeight)
	}
	if len(txs) == 0 {
		p.cell(contentWide, rowHeight, "Tidak ada transaksi pada periode ini", "1", "C", false)
		p.Ln(rowHeight)
	}
}

// RenderManualInvoice draws a one-line invoice for an arbitrary recipient.
func (r *PDFRenderer) RenderManualInvoice(w io.Writer, inv domain.ManualInvoice) error {
	s := inv.Settings
	p := r.newPage("Invoice " + inv.To)

	p.SetFont(fontFamily, "B", 20)
	p.text(160, 20, "INVOICE")
	p.SetFont(fontFamily, "", 10)
	if inv.Date != "" {
		p.text(160, 26, "Tanggal: "+inv.Date)
	}

	p.SetFont(fontFamily, "B", 16)
	p.text(leftMargin, 20, s.Name)
	p.SetFont(fontFamily, "", 10)
	p.text(leftMargin, 26, s.Address)

	p.text(leftMargin, 50, "Kepada Yth:")
	p.SetFont(fontFamily, "", 12)
	p.text(leftMargin, 56, inv.To)

	widths := []float64{92, 20, 35, 35}
	p.SetXY(leftMargin, 70)
	p.SetFont(fontFamily, "B", 10)
	p.SetFillColor(15, 23, 42)
	p.SetTextColor(255, 255, 255)
	for i, title := range []string{"Deskripsi", "Qty", "Harga Satuan", "Total"} {
		p.cell(widths[i], 8, title, "1", "C", true)
	}
	p.Ln(8)

	p.SetFont(fontFamily, "", 10)
	p.SetTextColor(40, 40, 40)
	total := inv.Total()
	p.CellFormat(widths[0], 8, p.fit(inv.Description, widths[0]-2), "1", 0, "L", false, 0, "")
	p.cell(widths[1], 8, strconv.FormatInt(inv.Quantity, 10), "1", "C", false)
	p.cell(widths[2], 8, utils.FormatRupiah(inv.UnitPrice), "1", "R", false)
	p.cell(widths[3], 8, utils.FormatRupiah(total), "1", "R", false)
	p.Ln(8)

	y := p.GetY() + 10
	p.SetFont(fontFamily, "B", 12)
	p.text(140, y, "Total Tagihan: "+utils.FormatRupiah(total))

	p.SetFont(fontFamily, "", 10)
	p.text(leftMargin, y+20, "Transfer ke:")
	p.text(leftMargin, y+26, fmt.Sprintf("%s - %s (a.n %s)", s.BankName, s.AccountNumber, s.AccountHolder))

	return p.output(w)
}
