package loan

import (
	"otsc-backend/internal/domain/loan"
	"otsc-backend/internal/domain/repayment"
)

// Detail is the loan snapshot served to the web layer.
type Detail struct {
	Loan       *loan.Loan            `json:"loan"`
	Repayments []repayment.Repayment `json:"repayments"`
}

// Register is the filtered loan list plus the portfolio figures shown on
// the dashboard.
type Register struct {
	Loans []loan.Loan         `json:"loans"`
	Stats loan.PortfolioStats `json:"stats"`
}
