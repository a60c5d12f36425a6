package dashboard

import "github.com/shopspring/decimal"

// DashboardResponse is the combined response for the main dashboard endpoint
type DashboardResponse struct {
	Today     ActivityResponse  `json:"today"`
	Month     ActivityResponse  `json:"month"`
	Headcount HeadcountResponse `json:"headcount"`
}

// CountAmount is a document count with its summed amount.
type CountAmount struct {
	Count  int64           `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// ActivityResponse summarizes money movement over one period. Period is
// "YYYY-MM-DD" for a day or "YYYY-MM" for a month.
type ActivityResponse struct {
	Period           string      `json:"period"`
	Orders           CountAmount `json:"orders"`
	Invoices         CountAmount `json:"invoices"`
	Expenses         CountAmount `json:"expenses"`
	CustomerPayments CountAmount `json:"customer_payments"`
	SupplierPayments CountAmount `json:"supplier_payments"`
	StaffPayments    CountAmount `json:"staff_payments"`
	Payroll          CountAmount `json:"payroll"`
	// Net is money in less money out.
	Net decimal.Decimal `json:"net"`
}

type HeadcountResponse struct {
	ActiveStaff     int64 `json:"active_staff"`
	ActiveCustomers int64 `json:"active_customers"`
	ActiveSuppliers int64 `json:"active_suppliers"`
}
