package csvexport

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"bananabill/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Bill Number",
	"Date",
	"Farmer Name",
	"Farmer Mobile",
	"Vehicle Number",
	"Gross Weight (kg)",
	"Patti Weight (kg)",
	"Box Count",
	"Net Weight (kg)",
	"Danda Weight (kg)",
	"Tut Wastage (kg)",
	"Final Net Weight (kg)",
	"Rate (Rs/kg)",
	"Total Amount (Rs)",
	"Majuri (Rs)",
	"Net Amount (Rs)",
	"Payment Status",
	"Paid Amount (Rs)",
	"Advance Amount (Rs)",
	"Payment Date",
}

// Writer wraps csv.Writer for exporting bills as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteBills converts a batch of bills to CSV rows and writes them.
func (w *Writer) WriteBills(bills []domain.Bill) error {
	for i := range bills {
		if err := w.csv.Write(billToRow(&bills[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}

func billToRow(b *domain.Bill) []string {
	farmerName, farmerMobile := "", ""
	if b.Farmer != nil {
		farmerName = b.Farmer.Name
		farmerMobile = b.Farmer.Mobile
	}
	return []string{
		b.BillNumber,
		b.CreatedAt.Format("2006-01-02"),
		farmerName,
		farmerMobile,
		b.VehicleNumber,
		num(b.GrossWeight),
		num(b.PattiWeight),
		strconv.Itoa(b.BoxCount),
		num(b.NetWeight),
		num(b.DandaWeight),
		num(b.TutWastage),
		num(b.FinalNetWeight),
		num(b.RatePerKg),
		num(b.TotalAmount),
		num(b.Majuri),
		num(b.NetAmount),
		string(b.PaymentStatus),
		num(b.PaidAmount),
		num(b.AdvanceAmount),
		optDate(b.PaymentDate),
	}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func optDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
