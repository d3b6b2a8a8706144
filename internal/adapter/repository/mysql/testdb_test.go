package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schemas only for tests (no decimal/ENUM column types) ---

type loanSQLite struct {
	ID         uint64 `gorm:"primaryKey;column:id"`
	LoanNumber string `gorm:"column:loan_number;size:20"`
	MemberID   uint64 `gorm:"column:member_id"`

	AmountRequested       float64 `gorm:"column:amount_requested"`
	AmountApproved        float64 `gorm:"column:amount_approved"`
	Purpose               string  `gorm:"column:purpose"`
	RepaymentPeriodMonths int     `gorm:"column:repayment_period_months"`
	InterestRate          float64 `gorm:"column:interest_rate"`

	SecurityType             string     `gorm:"column:security_type"`
	CollateralDescription    string     `gorm:"column:collateral_description"`
	CollateralValue          float64    `gorm:"column:collateral_value"`
	CollateralDocumentPath   string     `gorm:"column:collateral_document_path"`
	Guarantor1MemberID       uint64     `gorm:"column:guarantor1_member_id"`
	Guarantor1Decision       string     `gorm:"column:guarantor1_decision"`
	Guarantor1RespondedAt    *time.Time `gorm:"column:guarantor1_responded_at"`
	Guarantor1DeclineReason  string     `gorm:"column:guarantor1_decline_reason"`
	Guarantor2MemberID       uint64     `gorm:"column:guarantor2_member_id"`
	Guarantor2Decision       string     `gorm:"column:guarantor2_decision"`
	Guarantor2RespondedAt    *time.Time `gorm:"column:guarantor2_responded_at"`
	Guarantor2DeclineReason  string     `gorm:"column:guarantor2_decline_reason"`

	ExecutiveApproved bool       `gorm:"column:executive_approved"`
	ApprovedBy        uint64     `gorm:"column:approved_by"`
	ApprovalDate      *time.Time `gorm:"column:approval_date"`
	ApprovalNotes     string     `gorm:"column:approval_notes"`

	Disbursed                bool       `gorm:"column:disbursed"`
	DisbursementDate         *time.Time `gorm:"column:disbursement_date"`
	DueDate                  *time.Time `gorm:"column:due_date"`
	DisbursementMethod       string     `gorm:"column:disbursement_method"`
	DisbursementReference    string     `gorm:"column:disbursement_reference"`
	DisbursementDocumentPath string     `gorm:"column:disbursement_document_path"`

	TotalPayable float64 `gorm:"column:total_payable"`
	TotalPaid    float64 `gorm:"column:total_paid"`
	Balance      float64 `gorm:"column:balance"`

	Status        string     `gorm:"column:status"`
	DefaultDate   *time.Time `gorm:"column:default_date"`
	RecoveryNotes string     `gorm:"column:recovery_notes"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (loanSQLite) TableName() string { return "loans" }

type memberSQLite struct {
	ID                    uint64 `gorm:"primaryKey;column:id"`
	MemberNumber          string `gorm:"column:member_number"`
	FullName              string `gorm:"column:full_name"`
	Email                 string `gorm:"column:email"`
	PhonePrimary          string `gorm:"column:phone_primary"`
	PhoneSecondary        string `gorm:"column:phone_secondary"`
	Status                string `gorm:"column:status"`
	Role                  string `gorm:"column:role"`
	ConsecutiveMonthsPaid int    `gorm:"column:consecutive_months_paid"`
	QualifiedForBenefits  bool   `gorm:"column:qualified_for_benefits"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (memberSQLite) TableName() string { return "members" }

type repaymentSQLite struct {
	ID               uint64    `gorm:"primaryKey;column:id"`
	RepaymentID      string    `gorm:"column:repayment_id"`
	LoanID           uint64    `gorm:"column:loan_id"`
	ReceiptNumber    string    `gorm:"column:receipt_number"`
	PaymentDate      time.Time `gorm:"column:payment_date"`
	AmountPaid       float64   `gorm:"column:amount_paid"`
	PrincipalPortion float64   `gorm:"column:principal_portion"`
	InterestPortion  float64   `gorm:"column:interest_portion"`
	PaymentMethod    string    `gorm:"column:payment_method"`
	TransactionRef   string    `gorm:"column:transaction_reference"`
	Notes            string    `gorm:"column:notes"`
	RecordedBy       uint64    `gorm:"column:recorded_by"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

func (repaymentSQLite) TableName() string { return "loan_repayments" }

type sequenceSQLite struct {
	Prefix string `gorm:"primaryKey;column:prefix"`
	Value  uint64 `gorm:"column:value"`
}

func (sequenceSQLite) TableName() string { return "sequences" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the
// sqlite-safe schemas. The repositories under test still work against the
// domain models; only the DDL differs.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&loanSQLite{}, &memberSQLite{}, &repaymentSQLite{}, &sequenceSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
