package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "otsc-backend/internal/adapter/http"
	"otsc-backend/internal/adapter/middleware"
	notifyadp "otsc-backend/internal/adapter/notification"
	"otsc-backend/internal/adapter/repository/mysql"
	"otsc-backend/internal/config"
	"otsc-backend/internal/infrastructure/cache"
	"otsc-backend/internal/infrastructure/db"
	approvalUC "otsc-backend/internal/usecase/approval"
	disbursementUC "otsc-backend/internal/usecase/disbursement"
	guarantorUC "otsc-backend/internal/usecase/guarantor"
	loanUC "otsc-backend/internal/usecase/loan"
	reminderUC "otsc-backend/internal/usecase/reminder"
	repaymentUC "otsc-backend/internal/usecase/repayment"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	loans := mysql.NewLoanRepository(gdb)
	repayments := mysql.NewRepaymentRepository(gdb)
	members := mysql.NewMemberRepository(gdb)
	tx := mysql.NewGormUoW(gdb)
	notifier := notifyadp.New(cfg)

	loanUsecase := loanUC.NewUsecase(tx, loans, repayments, members, notifier, cfg)
	guarantorUsecase := guarantorUC.NewUsecase(tx, notifier, cfg)
	approvalUsecase := approvalUC.NewUsecase(tx)
	disbursementUsecase := disbursementUC.NewUsecase(tx)
	repaymentUsecase := repaymentUC.NewUsecase(tx)
	reminderUsecase := reminderUC.NewUsecase(loans, members, notifier, cfg)

	h := httpadp.NewHandler()
	loanHandler := httpadp.NewLoanHandler(loanUsecase, members)
	guarantorHandler := httpadp.NewGuarantorHandler(guarantorUsecase, members)
	approvalHandler := httpadp.NewApprovalHandler(approvalUsecase, disbursementUsecase, members)
	repaymentHandler := httpadp.NewRepaymentHandler(repaymentUsecase, members)
	reminderHandler := httpadp.NewReminderHandler(reminderUsecase)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idemp := middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	// routes
	e.GET("/health", h.Health)

	e.GET("/loans", loanHandler.ListLoans)
	e.GET("/loans/overdue", reminderHandler.Overdue)
	e.GET("/loans/upcoming", reminderHandler.Upcoming)
	e.GET("/loans/:loan_number", loanHandler.GetLoan)

	e.POST("/loans", loanHandler.ApplyLoan, idemp)
	e.PUT("/loans/:loan_number", loanHandler.EditLoan, idemp)
	e.POST("/loans/:loan_number/cancel", loanHandler.CancelLoan, idemp)
	e.POST("/loans/:loan_number/guarantor/approve", guarantorHandler.Approve, idemp)
	e.POST("/loans/:loan_number/guarantor/decline", guarantorHandler.Decline, idemp)
	e.POST("/loans/:loan_number/approve", approvalHandler.ApproveLoan, idemp)
	e.POST("/loans/:loan_number/reject", approvalHandler.RejectLoan, idemp)
	e.POST("/loans/:loan_number/disburse", approvalHandler.DisburseLoan, idemp)
	e.POST("/loans/:loan_number/default", approvalHandler.MarkDefaulted, idemp)
	e.POST("/loans/:loan_number/repayments", repaymentHandler.RecordRepayment, idemp)

	// hit by the external daily scheduler
	e.POST("/reminders/scan", reminderHandler.Scan)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
