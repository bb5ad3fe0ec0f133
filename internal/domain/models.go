package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a trader account authenticated by mobile number.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Mobile       string    `db:"mobile" json:"mobile"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Farmer represents a produce supplier identified by mobile number.
type Farmer struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Mobile    string    `db:"mobile" json:"mobile"`
	Name      string    `db:"name" json:"name"`
	Address   string    `db:"address" json:"address"`
	CreatedBy uuid.UUID `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Bill represents a single produce-intake record with derived weight and
// payment fields. All weights are in kg, all amounts in rupees.
type Bill struct {
	ID            uuid.UUID `db:"id" json:"id"`
	BillNumber    string    `db:"bill_number" json:"bill_number"`
	FarmerID      uuid.UUID `db:"farmer_id" json:"farmer_id"`
	VehicleNumber string    `db:"vehicle_number" json:"vehicle_number"`

	// Weight pipeline
	GrossWeight    float64 `db:"gross_weight" json:"gross_weight"`
	PattiWeight    float64 `db:"patti_weight" json:"patti_weight"`
	BoxCount       int     `db:"box_count" json:"box_count"`
	NetWeight      float64 `db:"net_weight" json:"net_weight"`
	DandaWeight    float64 `db:"danda_weight" json:"danda_weight"`
	TutWastage     float64 `db:"tut_wastage" json:"tut_wastage"`
	FinalNetWeight float64 `db:"final_net_weight" json:"final_net_weight"`

	// Payment pipeline
	RatePerKg   float64 `db:"rate_per_kg" json:"rate_per_kg"`
	TotalAmount float64 `db:"total_amount" json:"total_amount"`
	Majuri      float64 `db:"majuri" json:"majuri"`
	NetAmount   float64 `db:"net_amount" json:"net_amount"`

	// Payment tracking (trader pays farmer)
	PaymentStatus    PaymentStatus `db:"payment_status" json:"payment_status"`
	PaidAmount       float64       `db:"paid_amount" json:"paid_amount"`
	AdvanceAmount    float64       `db:"advance_amount" json:"advance_amount"`
	PaymentDate      *time.Time    `db:"payment_date" json:"payment_date"`
	DueDate          *time.Time    `db:"due_date" json:"due_date"`
	LastReminderSent *time.Time    `db:"last_reminder_sent" json:"last_reminder_sent"`

	ImageURL string `db:"image_url" json:"image_url"`

	CreatedBy uuid.UUID  `db:"created_by" json:"created_by"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	UpdatedBy *uuid.UUID `db:"updated_by" json:"updated_by"`

	// Denormalized farmer details for list views and reports
	Farmer *Farmer `db:"-" json:"farmer,omitempty"`
}

// PaymentHistory is an append-only audit record of a single payment event.
// Farmer and bill details are denormalized so the trail survives edits.
type PaymentHistory struct {
	ID                 uuid.UUID   `db:"id" json:"id"`
	BillID             uuid.UUID   `db:"bill_id" json:"bill_id"`
	BillNumber         string      `db:"bill_number" json:"bill_number"`
	FarmerID           uuid.UUID   `db:"farmer_id" json:"farmer_id"`
	FarmerName         string      `db:"farmer_name" json:"farmer_name"`
	FarmerMobile       string      `db:"farmer_mobile" json:"farmer_mobile"`
	Amount             float64     `db:"amount" json:"amount"`
	PreviousPaidAmount float64     `db:"previous_paid_amount" json:"previous_paid_amount"`
	NewPaidAmount      float64     `db:"new_paid_amount" json:"new_paid_amount"`
	BillNetAmount      float64     `db:"bill_net_amount" json:"bill_net_amount"`
	PaymentType        PaymentType `db:"payment_type" json:"payment_type"`
	PaymentMethod      string      `db:"payment_method" json:"payment_method"`
	Notes              string      `db:"notes" json:"notes"`
	CreatedBy          uuid.UUID   `db:"created_by" json:"created_by"`
	CreatedByName      string      `db:"created_by_name" json:"created_by_name"`
	CreatedAt          time.Time   `db:"created_at" json:"created_at"`
}

// RefreshToken is a persisted long-lived credential. Tokens are rotated on
// every refresh and revoked on logout.
type RefreshToken struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Token     string    `db:"token" json:"token"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Mobile    string    `db:"mobile" json:"mobile"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	Revoked   bool      `db:"revoked" json:"revoked"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// IsExpired reports whether the refresh token is past its expiry.
func (t *RefreshToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// OTP is a short-lived one-time password, stored hashed.
type OTP struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Mobile    string    `db:"mobile" json:"mobile"`
	OTPHash   string    `db:"otp_hash" json:"-"`
	Action    OTPAction `db:"action" json:"action"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	Used      bool      `db:"used" json:"used"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// IsExpired reports whether the OTP is past its expiry.
func (o *OTP) IsExpired() bool {
	return time.Now().After(o.ExpiresAt)
}

// BillFilters narrows bill queries. Zero values mean "no filter".
type BillFilters struct {
	FarmerID      *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
	PaymentStatus PaymentStatus
}

// MonthlyReport aggregates a month of billing activity.
type MonthlyReport struct {
	Year          int            `json:"year"`
	Month         time.Month     `json:"month"`
	MonthName     string         `json:"month_name"`
	TotalBills    int            `json:"total_bills"`
	TotalAmount   float64        `json:"total_amount"`
	AverageAmount float64        `json:"average_amount"`
	TotalWeight   float64        `json:"total_weight"`
	Farmers       []FarmerTotals `json:"farmers"`
	Bills         []Bill         `json:"bills"`
}

// FarmerTotals is a per-farmer rollup within a report.
type FarmerTotals struct {
	FarmerID    uuid.UUID `json:"farmer_id"`
	Name        string    `json:"name"`
	Mobile      string    `json:"mobile"`
	BillCount   int       `json:"bill_count"`
	TotalAmount float64   `json:"total_amount"`
	TotalWeight float64   `json:"total_weight"`
}

// FarmerReport summarizes a single farmer's bills, optionally filtered.
type FarmerReport struct {
	Farmer       *Farmer `json:"farmer"`
	Bills        []Bill  `json:"bills"`
	TotalBills   int     `json:"total_bills"`
	TotalAmount  float64 `json:"total_amount"`
	TotalWeight  float64 `json:"total_weight"`
	UnpaidBills  int     `json:"unpaid_bills"`
	UnpaidAmount float64 `json:"unpaid_amount"`
	IsFiltered   bool    `json:"is_filtered"`
}

// MonthInfo identifies a month that has at least one bill.
type MonthInfo struct {
	Year      int        `json:"year"`
	Month     time.Month `json:"month"`
	MonthName string     `json:"month_name"`
	Label     string     `json:"label"`
}

// DashboardStats holds the headline numbers for the dashboard view.
type DashboardStats struct {
	TodayBills        int     `json:"today_bills"`
	TotalBills        int     `json:"total_bills"`
	UnpaidBills       int     `json:"unpaid_bills"`
	TotalUnpaidAmount float64 `json:"total_unpaid_amount"`
	RecentBills       []Bill  `json:"recent_bills"`
}
