package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bananabill/internal/domain"
)

func TestWriter_HeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	paidAt := time.Date(2025, 8, 20, 14, 30, 0, 0, time.UTC)
	bills := []domain.Bill{
		{
			BillNumber:     "BB250800001",
			CreatedAt:      time.Date(2025, 8, 15, 9, 0, 0, 0, time.UTC),
			Farmer:         &domain.Farmer{Name: "Suresh Patil", Mobile: "9876543210"},
			VehicleNumber:  "MH12AB1234",
			GrossWeight:    100,
			PattiWeight:    5,
			BoxCount:       2,
			NetWeight:      93,
			DandaWeight:    6.51,
			TutWastage:     3,
			FinalNetWeight: 102.51,
			RatePerKg:      50,
			TotalAmount:    5125.5,
			Majuri:         500,
			NetAmount:      4625.5,
			PaymentStatus:  domain.PaymentStatusPaid,
			PaidAmount:     4625.5,
			PaymentDate:    &paidAt,
		},
		{
			BillNumber:    "BB250800002",
			CreatedAt:     time.Date(2025, 8, 16, 9, 0, 0, 0, time.UTC),
			GrossWeight:   40,
			RatePerKg:     45,
			PaymentStatus: domain.PaymentStatusUnpaid,
		},
	}

	assert.NoError(t, w.WriteHeader())
	assert.NoError(t, w.WriteBills(bills))
	assert.NoError(t, w.Flush())

	records, err := csv.NewReader(&buf).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 3)

	assert.Equal(t, "Bill Number", records[0][0])
	assert.Equal(t, "Payment Date", records[0][len(records[0])-1])
	assert.Len(t, records[0], 20)

	row := records[1]
	assert.Equal(t, "BB250800001", row[0])
	assert.Equal(t, "2025-08-15", row[1])
	assert.Equal(t, "Suresh Patil", row[2])
	assert.Equal(t, "9876543210", row[3])
	assert.Equal(t, "2", row[7])
	assert.Equal(t, "102.51", row[11])
	assert.Equal(t, "4625.50", row[15])
	assert.Equal(t, "PAID", row[16])
	assert.Equal(t, "2025-08-20", row[19])

	// A bill without a farmer or payment date gets empty cells, not a panic.
	assert.Equal(t, "", records[2][2])
	assert.Equal(t, "", records[2][19])
}
