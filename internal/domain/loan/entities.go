package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPendingGuarantorApproval Status = "Pending Guarantor Approval"
	StatusReturnedToApplicant      Status = "Returned to Applicant"
	StatusPendingExecutiveApproval Status = "Pending Executive Approval"
	StatusApproved                 Status = "Approved"
	StatusRejected                 Status = "Rejected"
	StatusActive                   Status = "Active"
	StatusCompleted                Status = "Completed"
	StatusDefaulted                Status = "Defaulted"

	// StatusDisbursedLegacy predates the Active/Completed split. It is
	// accepted read-side (repayments, reminder queries) but never written.
	StatusDisbursedLegacy Status = "Disbursed"
)

// OpenStatuses are the non-terminal statuses. A member may hold at most one
// loan in any of these at a time.
func OpenStatuses() []Status {
	return []Status{
		StatusPendingGuarantorApproval,
		StatusReturnedToApplicant,
		StatusPendingExecutiveApproval,
		StatusApproved,
		StatusDisbursedLegacy,
		StatusActive,
	}
}

type SecurityType string

const (
	SecurityCollateral SecurityType = "Collateral"
	SecurityGuarantors SecurityType = "Guarantors"
)

// Decision is the tri-state answer of one guarantor slot.
type Decision string

const (
	DecisionPending  Decision = "pending"
	DecisionApproved Decision = "approved"
	DecisionDeclined Decision = "declined"
)

// GuarantorSlot holds one guarantor's reference and response. Embedded twice
// on Loan with guarantor1_/guarantor2_ column prefixes.
type GuarantorSlot struct {
	MemberID      uint64     `gorm:"column:member_id" json:"member_id"`
	Decision      Decision   `gorm:"column:decision;size:10;default:'pending'" json:"decision"`
	RespondedAt   *time.Time `gorm:"column:responded_at" json:"responded_at,omitempty"`
	DeclineReason string     `gorm:"column:decline_reason;type:text" json:"decline_reason,omitempty"`
}

func (s *GuarantorSlot) Approve(now time.Time) {
	s.Decision = DecisionApproved
	s.RespondedAt = &now
}

func (s *GuarantorSlot) Decline(now time.Time, reason string) {
	s.Decision = DecisionDeclined
	s.RespondedAt = &now
	s.DeclineReason = reason
}

// Reset clears the slot back to pending, keeping the member reference.
func (s *GuarantorSlot) Reset() {
	s.Decision = DecisionPending
	s.RespondedAt = nil
	s.DeclineReason = ""
}

type Loan struct {
	ID         uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanNumber string `gorm:"size:20;uniqueIndex:ux_loans_loan_number" json:"loan_number"` // LN-YYYY-NNNN
	MemberID   uint64 `gorm:"index:idx_loans_member_status" json:"member_id"`

	AmountRequested       decimal.Decimal     `gorm:"type:decimal(15,2)" json:"amount_requested"`
	AmountApproved        decimal.NullDecimal `gorm:"type:decimal(15,2)" json:"amount_approved"`
	Purpose               string              `gorm:"type:text" json:"purpose"`
	RepaymentPeriodMonths int                 `json:"repayment_period_months"`
	InterestRate          decimal.Decimal     `gorm:"type:decimal(5,2)" json:"interest_rate"` // monthly percentage

	SecurityType           SecurityType        `gorm:"size:20" json:"security_type"`
	CollateralDescription  string              `gorm:"type:text" json:"collateral_description,omitempty"`
	CollateralValue        decimal.NullDecimal `gorm:"type:decimal(15,2)" json:"collateral_value"`
	CollateralDocumentPath string              `gorm:"size:255" json:"collateral_document_path,omitempty"`
	Guarantor1             GuarantorSlot       `gorm:"embedded;embeddedPrefix:guarantor1_" json:"guarantor1"`
	Guarantor2             GuarantorSlot       `gorm:"embedded;embeddedPrefix:guarantor2_" json:"guarantor2"`

	ExecutiveApproved bool       `gorm:"default:false" json:"executive_approved"`
	ApprovedBy        uint64     `json:"approved_by,omitempty"`
	ApprovalDate      *time.Time `gorm:"type:date" json:"approval_date,omitempty"`
	ApprovalNotes     string     `gorm:"type:text" json:"approval_notes,omitempty"`

	Disbursed                bool       `gorm:"default:false" json:"disbursed"`
	DisbursementDate         *time.Time `gorm:"type:date" json:"disbursement_date,omitempty"`
	DueDate                  *time.Time `gorm:"type:date;index" json:"due_date,omitempty"`
	DisbursementMethod       string     `gorm:"size:50" json:"disbursement_method,omitempty"`
	DisbursementReference    string     `gorm:"size:50" json:"disbursement_reference,omitempty"`
	DisbursementDocumentPath string     `gorm:"size:255" json:"disbursement_document_path,omitempty"`

	TotalPayable decimal.Decimal `gorm:"type:decimal(15,2)" json:"total_payable"`
	TotalPaid    decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"total_paid"`
	Balance      decimal.Decimal `gorm:"type:decimal(15,2)" json:"balance"`

	Status        Status     `gorm:"size:30;default:'Pending Guarantor Approval';index:idx_loans_member_status" json:"status"`
	DefaultDate   *time.Time `gorm:"type:date" json:"default_date,omitempty"`
	RecoveryNotes string     `gorm:"type:text" json:"recovery_notes,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// SlotFor returns the guarantor slot referencing memberID and its ordinal
// (1 or 2), or nil if the member is not a guarantor on this loan.
func (l *Loan) SlotFor(memberID uint64) (*GuarantorSlot, int) {
	if l.SecurityType != SecurityGuarantors || memberID == 0 {
		return nil, 0
	}
	if l.Guarantor1.MemberID == memberID {
		return &l.Guarantor1, 1
	}
	if l.Guarantor2.MemberID == memberID {
		return &l.Guarantor2, 2
	}
	return nil, 0
}

// BothGuarantorsApproved reports whether guarantor consent is complete.
// Collateral loans need no guarantor consent, so they always pass.
func (l *Loan) BothGuarantorsApproved() bool {
	if l.SecurityType != SecurityGuarantors {
		return true
	}
	return l.Guarantor1.Decision == DecisionApproved && l.Guarantor2.Decision == DecisionApproved
}

func (l *Loan) AnyGuarantorDeclined() bool {
	if l.SecurityType != SecurityGuarantors {
		return false
	}
	return l.Guarantor1.Decision == DecisionDeclined || l.Guarantor2.Decision == DecisionDeclined
}

// CalculateTotalPayable derives total payable and balance from the approved
// amount using flat monthly interest:
//
//	total = principal + principal * rate/100 * months
//
// e.g. 300,000 at 5.00% for 2 months = 330,000. Fixed once at approval time;
// repayments never trigger a recalculation.
func (l *Loan) CalculateTotalPayable() decimal.Decimal {
	if !l.AmountApproved.Valid {
		return decimal.Zero
	}
	principal := l.AmountApproved.Decimal
	months := decimal.NewFromInt(int64(l.RepaymentPeriodMonths))
	interest := principal.Mul(l.InterestRate).Div(decimal.NewFromInt(100)).Mul(months)
	l.TotalPayable = principal.Add(interest).Round(2)
	l.Balance = l.TotalPayable.Sub(l.TotalPaid)
	return l.TotalPayable
}

// IsTerminal reports whether no further lifecycle transition applies.
func (l *Loan) IsTerminal() bool {
	switch l.Status {
	case StatusRejected, StatusCompleted, StatusDefaulted:
		return true
	}
	return false
}

// IsServicing reports whether the loan accepts repayments.
func (l *Loan) IsServicing() bool {
	return l.Status == StatusActive || l.Status == StatusDisbursedLegacy
}
