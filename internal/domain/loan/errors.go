package loan

import "errors"

var (
	ErrNotFound              = errors.New("loan not found")
	ErrValidation            = errors.New("invalid loan input")
	ErrInvalidState          = errors.New("operation not allowed in current loan status")
	ErrInvalidAmount         = errors.New("amount must be greater than zero")
	ErrGuarantorsNotApproved = errors.New("both guarantors must approve first")
	ErrConflictOfInterest    = errors.New("approver is a guarantor on this loan")
	ErrDuplicateResponse     = errors.New("guarantor slot already answered")
	ErrNotAuthorized         = errors.New("caller is not authorized for this action")
)
