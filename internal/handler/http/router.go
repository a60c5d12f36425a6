package http

import (
	"log/slog"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	logger *slog.Logger,
	allowedOrigins []string,
	JWTService jwt.Service,
	configHandler ProductionConfigHandler,
	masterHandler MasterHandler,
	recordHandler StaffRecordHandler,
	orderHandler OrderHandler,
	invoiceHandler InvoiceHandler,
	paymentHandler PaymentHandler,
	expenseHandler ExpenseHandler,
	ledgerHandler LedgerHandler,
	dashboardHandler DashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)
		r.Use(middleware.RequireBusiness)

		r.Route("/production-configs", func(r chi.Router) {
			r.With(middleware.RequirePermission(user.PermissionConfigView)).Group(func(r chi.Router) {
				r.Get("/", configHandler.List)
				r.Get("/effective", configHandler.GetEffective)
				r.Get("/{id}", configHandler.Get)
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Post("/", configHandler.Create)
				r.Put("/{id}", configHandler.Update)
				r.Delete("/{id}", configHandler.Delete)
			})
		})

		r.Route("/staff", func(r chi.Router) {
			r.With(middleware.RequirePermission(user.PermissionMasterView)).Group(func(r chi.Router) {
				r.Get("/", masterHandler.ListStaff)
				r.Get("/stats", masterHandler.StaffStats)
				r.Get("/{id}", masterHandler.GetStaff)
			})
			r.With(middleware.RequirePermission(user.PermissionMasterManage)).Group(func(r chi.Router) {
				r.Post("/", masterHandler.CreateStaff)
				r.Put("/{id}", masterHandler.UpdateStaff)
				r.Patch("/{id}/toggle", masterHandler.ToggleStaff)
				r.Delete("/{id}", masterHandler.DeleteStaff)
			})
		})

		r.Route("/customers", func(r chi.Router) {
			r.With(middleware.RequirePermission(user.PermissionMasterView)).Group(func(r chi.Router) {
				r.Get("/", masterHandler.ListCustomers)
				r.Get("/stats", masterHandler.CustomerStats)
				r.Get("/{id}", masterHandler.GetCustomer)
			})
			r.With(middleware.RequirePermission(user.PermissionMasterManage)).Group(func(r chi.Router) {
				r.Post("/", masterHandler.CreateCustomer)
				r.Put("/{id}", masterHandler.UpdateCustomer)
				r.Patch("/{id}/toggle", masterHandler.ToggleCustomer)
				r.Delete("/{id}", masterHandler.DeleteCustomer)
			})
		})

		r.Route("/suppliers", func(r chi.Router) {
			r.With(middleware.RequirePermission(user.PermissionMasterView)).Group(func(r chi.Router) {
				r.Get("/", masterHandler.ListSuppliers)
				r.Get("/stats", masterHandler.SupplierStats)
				r.Get("/{id}", masterHandler.GetSupplier)
			})
			r.With(middleware.RequirePermission(user.PermissionMasterManage)).Group(func(r chi.Router) {
				r.Post("/", masterHandler.CreateSupplier)
				r.Put("/{id}", masterHandler.UpdateSupplier)
				r.Patch("/{id}/toggle", masterHandler.ToggleSupplier)
				r.Delete("/{id}", masterHandler.DeleteSupplier)
			})
		})

		r.Route("/staff-records", func(r chi.Router) {
			r.With(middleware.RequirePermission(user.PermissionRecordView)).Group(func(r chi.Router) {
				r.Get("/", recordHandler.List)
				r.Get("/stats", recordHandler.Stats)
				r.Get("/months", recordHandler.Months)
				r.Get("/last/{staffId}", recordHandler.GetLast)
				r.Get("/{id}", recordHandler.Get)
				r.Get("/{id}/slip.pdf", recordHandler.SlipPDF)
			})
			r.With(middleware.RequirePermission(user.PermissionRecordWrite)).Group(func(r chi.Router) {
				r.Post("/", recordHandler.Create)
				r.Post("/preview", recordHandler.Preview)
				r.Put("/{id}", recordHandler.Update)
			})
			r.With(middleware.RequirePermission(user.PermissionRecordDelete)).Delete("/{id}", recordHandler.Delete)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(middleware.RequirePermission(user.PermissionOrderWrite))
			r.Get("/", orderHandler.List)
			r.Post("/", orderHandler.Create)
			r.Get("/stats", orderHandler.Stats)
			r.Post("/preview", orderHandler.Preview)
			r.Get("/{id}", orderHandler.Get)
			r.Put("/{id}", orderHandler.Update)
			r.Delete("/{id}", orderHandler.Delete)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Use(middleware.RequirePermission(user.PermissionInvoiceWrite))
			r.Get("/", invoiceHandler.List)
			r.Post("/", invoiceHandler.Create)
			r.Get("/order-groups", invoiceHandler.OrderGroups)
			r.Get("/{id}", invoiceHandler.Get)
			r.Delete("/{id}", invoiceHandler.Delete)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePermission(user.PermissionPaymentWrite))

			r.Route("/staff-payments", func(r chi.Router) {
				r.Get("/", paymentHandler.ListStaffPayments)
				r.Post("/", paymentHandler.CreateStaffPayment)
				r.Get("/stats", paymentHandler.StaffPaymentStats)
				r.Get("/months", paymentHandler.StaffPaymentMonths)
				r.Get("/{id}", paymentHandler.GetStaffPayment)
				r.Put("/{id}", paymentHandler.UpdateStaffPayment)
				r.Delete("/{id}", paymentHandler.DeleteStaffPayment)
			})

			r.Route("/customer-payments", func(r chi.Router) {
				r.Get("/", paymentHandler.ListCustomerPayments)
				r.Post("/", paymentHandler.CreateCustomerPayment)
				r.Get("/stats", paymentHandler.CustomerPaymentStats)
				r.Get("/months", paymentHandler.CustomerPaymentMonths)
				r.Get("/{id}", paymentHandler.GetCustomerPayment)
				r.Put("/{id}", paymentHandler.UpdateCustomerPayment)
				r.Delete("/{id}", paymentHandler.DeleteCustomerPayment)
			})

			r.Route("/supplier-payments", func(r chi.Router) {
				r.Get("/", paymentHandler.ListSupplierPayments)
				r.Post("/", paymentHandler.CreateSupplierPayment)
				r.Get("/stats", paymentHandler.SupplierPaymentStats)
				r.Get("/months", paymentHandler.SupplierPaymentMonths)
				r.Get("/{id}", paymentHandler.GetSupplierPayment)
				r.Put("/{id}", paymentHandler.UpdateSupplierPayment)
				r.Delete("/{id}", paymentHandler.DeleteSupplierPayment)
			})
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Use(middleware.RequirePermission(user.PermissionExpenseWrite))
			r.Get("/", expenseHandler.List)
			r.Post("/", expenseHandler.Create)
			r.Get("/stats", expenseHandler.Stats)
			r.Get("/{id}", expenseHandler.Get)
			r.Put("/{id}", expenseHandler.Update)
			r.Delete("/{id}", expenseHandler.Delete)
		})

		r.Route("/expense-items", func(r chi.Router) {
			r.Use(middleware.RequirePermission(user.PermissionExpenseWrite))
			r.Get("/", expenseHandler.ListItems)
			r.Post("/", expenseHandler.CreateItem)
			r.Put("/{id}", expenseHandler.UpdateItem)
			r.Patch("/{id}/toggle", expenseHandler.ToggleItem)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePermission(user.PermissionLedgerView))
			r.Get("/ledger/{party}", ledgerHandler.Balances)
			r.Get("/ledger/{party}/{id}/balance", ledgerHandler.Balance)
			r.Get("/ledger/{party}/{id}/statement", ledgerHandler.Statement)
			r.Get("/dashboard", dashboardHandler.GetDashboard)
		})
	})

	return r
}
