package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/smtp"
	"time"

	"otsc-backend/internal/config"
	"otsc-backend/internal/domain/loan"
	"otsc-backend/internal/domain/member"
)

// Dispatcher sends loan lifecycle notifications over email, SMS and
// WhatsApp. Channels are best-effort: a send succeeds if at least one
// configured channel accepted the message; per-channel failures are logged.
type Dispatcher struct {
	cfg    *config.Config
	client *http.Client
}

func New(cfg *config.Config) *Dispatcher {
	return &Dispatcher{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (d *Dispatcher) GuarantorRequested(ctx context.Context, l *loan.Loan, applicant, guarantor *member.Member, slot int) error {
	subject := fmt.Sprintf("Guarantor Request - Loan %s", l.LoanNumber)
	body := fmt.Sprintf(
		"Dear %s,\n\n%s (%s) has named you as Guarantor #%d on loan application %s for UGX %s.\n\nPlease log in to approve or decline the request:\n%s/loans/%s\n\nOld Timers Savings Club Kiteezi",
		guarantor.FullName, applicant.FullName, applicant.MemberNumber, slot,
		l.LoanNumber, l.AmountRequested.StringFixed(0), d.cfg.BaseURL, l.LoanNumber)
	sms := fmt.Sprintf("OTSC: %s has named you guarantor on loan %s (UGX %s). Please respond in the portal.",
		applicant.FullName, l.LoanNumber, l.AmountRequested.StringFixed(0))
	return d.sendAll(ctx, guarantor, subject, body, sms)
}

func (d *Dispatcher) BothGuarantorsApproved(ctx context.Context, l *loan.Loan, applicant *member.Member) error {
	subject := fmt.Sprintf("Guarantors Approved - Loan %s", l.LoanNumber)
	body := fmt.Sprintf(
		"Dear %s,\n\nBoth guarantors have approved your loan application %s. It is now pending executive approval.\n\nOld Timers Savings Club Kiteezi",
		applicant.FullName, l.LoanNumber)
	sms := fmt.Sprintf("OTSC: both guarantors approved loan %s. Now pending executive approval.", l.LoanNumber)
	return d.sendAll(ctx, applicant, subject, body, sms)
}

func (d *Dispatcher) GuarantorDeclined(ctx context.Context, l *loan.Loan, applicant *member.Member, guarantorName, reason string) error {
	subject := fmt.Sprintf("Guarantor Declined - Loan %s", l.LoanNumber)
	body := fmt.Sprintf(
		"Dear %s,\n\n%s has declined to guarantee your loan application %s.\nReason: %s\n\nThe application has been returned to you. You may edit and resubmit it with different guarantors or collateral, or cancel it.\n\nOld Timers Savings Club Kiteezi",
		applicant.FullName, guarantorName, l.LoanNumber, reason)
	sms := fmt.Sprintf("OTSC: %s declined to guarantee loan %s (%s). The application was returned to you.",
		guarantorName, l.LoanNumber, reason)
	return d.sendAll(ctx, applicant, subject, body, sms)
}

func (d *Dispatcher) DueTomorrow(ctx context.Context, l *loan.Loan, borrower *member.Member) error {
	due := ""
	if l.DueDate != nil {
		due = l.DueDate.Format("02/01/2006")
	}
	subject := fmt.Sprintf("Loan Payment Reminder - %s", l.LoanNumber)
	body := fmt.Sprintf(
		"Dear %s,\n\nThis is a friendly reminder that your loan payment is due tomorrow.\n\nLoan Number: %s\nTotal Payable: UGX %s\nAmount Paid: UGX %s\nBalance Remaining: UGX %s\nDue Date: %s\n\nPlease make your payment by the due date to avoid penalties.\n\nOld Timers Savings Club Kiteezi",
		borrower.FullName, l.LoanNumber, l.TotalPayable.StringFixed(0),
		l.TotalPaid.StringFixed(0), l.Balance.StringFixed(0), due)
	sms := fmt.Sprintf("OTSC Reminder: loan %s payment of UGX %s is due tomorrow (%s).",
		l.LoanNumber, l.Balance.StringFixed(0), due)
	return d.sendAll(ctx, borrower, subject, body, sms)
}

func (d *Dispatcher) NotifyExecutives(ctx context.Context, l *loan.Loan, borrower *member.Member, executives []member.Member) error {
	subject := fmt.Sprintf("Loan Due Tomorrow - %s", l.LoanNumber)
	body := fmt.Sprintf(
		"Dear Executive Committee Member,\n\nThe following loan is due for payment tomorrow:\n\nBorrower: %s (%s)\nLoan Number: %s\nBalance Remaining: UGX %s\n\nThe borrower has been notified. Please follow up as necessary.\n\n%s/loans/%s",
		borrower.FullName, borrower.MemberNumber, l.LoanNumber,
		l.Balance.StringFixed(0), d.cfg.BaseURL, l.LoanNumber)
	sms := fmt.Sprintf("OTSC Alert: loan %s for %s is due tomorrow. Balance UGX %s. Follow up required.",
		l.LoanNumber, borrower.FullName, l.Balance.StringFixed(0))

	sent := 0
	for i := range executives {
		if err := d.sendAll(ctx, &executives[i], subject, body, sms); err != nil {
			log.Printf("notify executive %s: %v", executives[i].MemberNumber, err)
			continue
		}
		sent++
	}
	if sent == 0 && len(executives) > 0 {
		return fmt.Errorf("no executive could be notified for loan %s", l.LoanNumber)
	}
	return nil
}

// sendAll pushes one message through every channel the member can receive.
// Success means at least one channel accepted it.
func (d *Dispatcher) sendAll(ctx context.Context, m *member.Member, subject, body, short string) error {
	delivered := false

	if m.Email != "" && d.cfg.SMTPHost != "" {
		if err := d.sendEmail(m.Email, subject, body); err != nil {
			log.Printf("email to %s failed: %v", m.Email, err)
		} else {
			delivered = true
		}
	}
	if m.PhonePrimary != "" && d.cfg.SMSEnabled {
		if err := d.postGateway(ctx, d.cfg.SMSGatewayURL, m.PhonePrimary, short); err != nil {
			log.Printf("sms to %s failed: %v", m.PhonePrimary, err)
		} else {
			delivered = true
		}
	}
	if m.PhonePrimary != "" && d.cfg.WhatsAppEnabled {
		if err := d.postGateway(ctx, d.cfg.WhatsAppGateway, m.PhonePrimary, short); err != nil {
			log.Printf("whatsapp to %s failed: %v", m.PhonePrimary, err)
		} else {
			delivered = true
		}
	}

	if !delivered {
		return fmt.Errorf("no channel delivered to member %s", m.MemberNumber)
	}
	return nil
}

func (d *Dispatcher) sendEmail(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		d.cfg.SMTPFrom, to, subject, body)
	addr := d.cfg.SMTPHost + ":" + d.cfg.SMTPPort
	return smtp.SendMail(addr, nil, d.cfg.SMTPFrom, []string{to}, []byte(msg))
}

func (d *Dispatcher) postGateway(ctx context.Context, url, phone, message string) error {
	if url == "" {
		return fmt.Errorf("gateway url not configured")
	}
	payload, _ := json.Marshal(map[string]string{"to": phone, "message": message})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("gateway returned %s", resp.Status)
	}
	return nil
}
