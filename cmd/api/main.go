package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/embroidery-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/lock"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/repository/postgresql"
	dashboardService "github.com/cmlabs-hris/embroidery-backend-go/internal/service/dashboard"
	expenseService "github.com/cmlabs-hris/embroidery-backend-go/internal/service/expense"
	invoiceService "github.com/cmlabs-hris/embroidery-backend-go/internal/service/invoice"
	ledgerService "github.com/cmlabs-hris/embroidery-backend-go/internal/service/ledger"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/service/master"
	orderService "github.com/cmlabs-hris/embroidery-backend-go/internal/service/order"
	paymentService "github.com/cmlabs-hris/embroidery-backend-go/internal/service/payment"
	configService "github.com/cmlabs-hris/embroidery-backend-go/internal/service/productionconfig"
	recordService "github.com/cmlabs-hris/embroidery-backend-go/internal/service/staffrecord"
	"github.com/go-chi/httplog/v3"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	log := logger.New(cfg.App.LogLevel)

	// Amounts are emitted as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}

// run serves the API until a signal arrives or the listener fails.
func run(cfg *config.Config, log *logrus.Logger) error {
	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	var locker lock.Locker
	if cfg.Redis.Addr != "" {
		rdb, err := lock.Connect(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer rdb.Close()
		locker = lock.NewRedisLocker(rdb)
	} else {
		log.Warn("REDIS_ADDRESS not set, using in-process locks")
		locker = lock.NewLocalLocker()
	}

	tx := postgresql.NewTransactor(db)

	configRepo := postgresql.NewProductionConfigRepository(db)
	staffRepo := postgresql.NewStaffRepository(db)
	customerRepo := postgresql.NewCustomerRepository(db)
	supplierRepo := postgresql.NewSupplierRepository(db)
	recordRepo := postgresql.NewStaffRecordRepository(db)
	orderRepo := postgresql.NewOrderRepository(db)
	invoiceRepo := postgresql.NewInvoiceRepository(db)
	staffPaymentRepo := postgresql.NewStaffPaymentRepository(db)
	customerPaymentRepo := postgresql.NewCustomerPaymentRepository(db)
	supplierPaymentRepo := postgresql.NewSupplierPaymentRepository(db)
	expenseRepo := postgresql.NewExpenseRepository(db)
	expenseItemRepo := postgresql.NewExpenseItemRepository(db)
	ledgerRepo := postgresql.NewLedgerRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	configSvc := configService.NewConfigService(configRepo, log)
	masterSvc := master.NewMasterService(staffRepo, customerRepo, supplierRepo, log)
	recordSvc := recordService.NewRecordService(recordRepo, staffRepo, configSvc, log)
	orderSvc := orderService.NewOrderService(orderRepo, customerRepo, configSvc, log)
	invoiceSvc := invoiceService.NewInvoiceService(invoiceRepo, orderRepo, customerRepo, tx, locker, log)
	paymentSvc := paymentService.NewPaymentService(
		staffRepo,
		customerRepo,
		supplierRepo,
		staffPaymentRepo,
		customerPaymentRepo,
		supplierPaymentRepo,
		log,
	)
	expenseSvc := expenseService.NewExpenseService(expenseRepo, expenseItemRepo, supplierRepo, tx, log)
	ledgerSvc := ledgerService.NewLedgerService(ledgerRepo, log)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, log)

	logFormat := httplog.SchemaECS.Concise(false)
	requestLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Env),
	)

	router := appHTTP.NewRouter(
		requestLogger,
		cfg.App.AllowedOrigins,
		JWTService,
		appHTTP.NewProductionConfigHandler(configSvc),
		appHTTP.NewMasterHandler(masterSvc),
		appHTTP.NewStaffRecordHandler(recordSvc),
		appHTTP.NewOrderHandler(orderSvc),
		appHTTP.NewInvoiceHandler(invoiceSvc),
		appHTTP.NewPaymentHandler(paymentSvc),
		appHTTP.NewExpenseHandler(expenseSvc),
		appHTTP.NewLedgerHandler(ledgerSvc),
		appHTTP.NewDashboardHandler(dashboardSvc),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Infof("Server running at http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("Server stopped gracefully")
	return nil
}
