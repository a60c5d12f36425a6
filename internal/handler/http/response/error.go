package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/invoice"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/ledger"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/customer"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/staff"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/supplier"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/order"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/payment"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/productionconfig"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/staffrecord"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/lock"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgconn"
)

// invalidTextRepresentation is raised by Postgres when a value such as a
// malformed UUID cannot be cast to its column type.
const invalidTextRepresentation = "22P02"

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation {
		ValidationError(w, map[string]string{"id": "must be a valid UUID"})
		return
	}

	switch {
	// Auth and access
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrUserIDRequired):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrBusinessIDRequired),
		errors.Is(err, user.ErrBusinessIDRequired),
		errors.Is(err, user.ErrAdminPrivilegeRequired),
		errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Not found
	case errors.Is(err, productionconfig.ErrConfigNotFound),
		errors.Is(err, staff.ErrStaffNotFound),
		errors.Is(err, customer.ErrCustomerNotFound),
		errors.Is(err, supplier.ErrSupplierNotFound),
		errors.Is(err, staffrecord.ErrRecordNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, invoice.ErrInvoiceNotFound),
		errors.Is(err, payment.ErrStaffPaymentNotFound),
		errors.Is(err, payment.ErrCustomerPaymentNotFound),
		errors.Is(err, payment.ErrSupplierPaymentNotFound),
		errors.Is(err, expense.ErrExpenseNotFound),
		errors.Is(err, expense.ErrItemNotFound):
		NotFound(w, err.Error())

	// Conflicts
	case errors.Is(err, productionconfig.ErrEffectiveDateExists),
		errors.Is(err, staff.ErrStaffNameExists),
		errors.Is(err, customer.ErrCustomerNameExists),
		errors.Is(err, supplier.ErrSupplierNameExists),
		errors.Is(err, expense.ErrItemNameExists),
		errors.Is(err, staffrecord.ErrRecordAlreadyExists),
		errors.Is(err, order.ErrOrderInvoiced),
		errors.Is(err, invoice.ErrOrdersUnavailable),
		errors.Is(err, lock.ErrNotObtained):
		Conflict(w, err.Error())

	// Rule violations the caller can fix
	case errors.Is(err, productionconfig.ErrNoConfigForBusiness),
		errors.Is(err, productionconfig.ErrInvalidStitchFormulaRules),
		errors.Is(err, staff.ErrStaffInactive),
		errors.Is(err, staff.ErrStaffIneligible),
		errors.Is(err, customer.ErrCustomerInactive),
		errors.Is(err, staffrecord.ErrInvalidAttendance),
		errors.Is(err, order.ErrInvalidUnit),
		errors.Is(err, invoice.ErrTooManyOrders),
		errors.Is(err, expense.ErrNoValidItems),
		errors.Is(err, ledger.ErrUnknownParty),
		errors.Is(err, ledger.ErrUnknownFormat),
		errors.Is(err, ledger.ErrInvalidWindow):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
