package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

type Config struct {
	AppPort string
	BaseURL string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	// Loan policy. Passed explicitly into the usecases instead of being
	// read from ambient globals at call time.
	LoanInterestRate    decimal.Decimal // monthly percentage, e.g. 5.00
	MaxRepaymentMonths  int
	QualificationPeriod int // consecutive contribution months to guarantee
	UpcomingDueDays     int // look-ahead window for the reminder scanner

	// Notification channels
	SMTPHost        string
	SMTPPort        string
	SMTPFrom        string
	SMSGatewayURL   string
	SMSEnabled      bool
	WhatsAppGateway string
	WhatsAppEnabled bool
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getenvBool(k string, d bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return d
}

func Load() *Config {
	c := &Config{
		AppPort: getenv("APP_PORT", "8080"),
		BaseURL: getenv("BASE_URL", "http://localhost:8080"),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "otsc"),
		MySQLUser: getenv("MYSQL_USER", "otsc"),
		MySQLPass: getenv("MYSQL_PASS", "otsc"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:      getenvInt("REDIS_DB", 0),
		IdempTTLSecs: getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),

		LoanInterestRate:    decimal.RequireFromString(getenv("LOAN_INTEREST_RATE", "5.00")),
		MaxRepaymentMonths:  getenvInt("LOAN_MAX_REPAYMENT_MONTHS", 2),
		QualificationPeriod: getenvInt("QUALIFICATION_PERIOD", 5),
		UpcomingDueDays:     getenvInt("LOAN_UPCOMING_DUE_DAYS", 7),

		SMTPHost:        getenv("SMTP_HOST", ""),
		SMTPPort:        getenv("SMTP_PORT", "587"),
		SMTPFrom:        getenv("SMTP_FROM", "noreply@otsc.local"),
		SMSGatewayURL:   getenv("SMS_GATEWAY_URL", ""),
		SMSEnabled:      getenvBool("SMS_ENABLED", false),
		WhatsAppGateway: getenv("WHATSAPP_GATEWAY_URL", ""),
		WhatsAppEnabled: getenvBool("WHATSAPP_ENABLED", false),
	}
	return c
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.LoanInterestRate.IsNegative() {
		return errors.New("LOAN_INTEREST_RATE must not be negative")
	}
	if c.MaxRepaymentMonths < 1 {
		return errors.New("LOAN_MAX_REPAYMENT_MONTHS must be at least 1")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
