package loan

import "time"

// AddMonths advances a date by whole calendar months, clamping to the last
// day of the target month when the source day does not exist there
// (Dec 31 + 2 months = Feb 28/29). time.AddDate would normalize past the
// month boundary instead, which is wrong for due dates.
func AddMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, 0, 0, 0, 0, t.Location())
}

// DueDateFrom computes the repayment deadline fixed at disbursement time.
func DueDateFrom(disbursement time.Time, repaymentMonths int) time.Time {
	return AddMonths(disbursement, repaymentMonths)
}
