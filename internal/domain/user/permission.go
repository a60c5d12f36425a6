package user

type Permission string

const (
	// Pay rule configuration
	PermissionConfigView   Permission = "config.view"
	PermissionConfigManage Permission = "config.manage"

	// Daily production records
	PermissionRecordView   Permission = "record.view"
	PermissionRecordWrite  Permission = "record.write"
	PermissionRecordDelete Permission = "record.delete"

	// Master data
	PermissionMasterView   Permission = "master.view"
	PermissionMasterManage Permission = "master.manage"

	// Orders and invoices
	PermissionOrderWrite   Permission = "order.write"
	PermissionInvoiceWrite Permission = "invoice.write"

	// Money movements
	PermissionPaymentWrite Permission = "payment.write"
	PermissionExpenseWrite Permission = "expense.write"

	// Balances, statements, dashboard
	PermissionLedgerView Permission = "ledger.view"
)

var adminPermissions = []Permission{
	PermissionConfigView,
	PermissionConfigManage,
	PermissionRecordView,
	PermissionRecordWrite,
	PermissionRecordDelete,
	PermissionMasterView,
	PermissionMasterManage,
	PermissionOrderWrite,
	PermissionInvoiceWrite,
	PermissionPaymentWrite,
	PermissionExpenseWrite,
	PermissionLedgerView,
}

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin:     adminPermissions,
	RoleDeveloper: adminPermissions,
	RoleStaff: {
		PermissionConfigView,
		PermissionRecordView,
		PermissionRecordWrite,
		PermissionMasterView,
		PermissionOrderWrite,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// ParseRole validates a role claim value.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleStaff, RoleDeveloper:
		return Role(s), nil
	}
	return "", ErrUnknownRole
}
