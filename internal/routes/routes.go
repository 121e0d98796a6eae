package routes

const (
	Health = "/health"

	Leases         = "/api/v1/leases"
	LeaseByID      = "/api/v1/leases/{id}"
	LeaseApprove   = "/api/v1/leases/{id}/approve"
	LeaseDeny      = "/api/v1/leases/{id}/deny"
	LeaseTerminate = "/api/v1/leases/{id}/terminate"

	Payments                 = "/api/v1/payments"
	PaymentByID              = "/api/v1/payments/{id}"
	PaymentLeaseCreateIntent = "/api/v1/payments/lease/{id}/create-intent"
	PaymentLeaseConfirm      = "/api/v1/payments/lease/{id}/confirm"
	PaymentRentCreateIntent  = "/api/v1/payments/rent/create-intent"
	PaymentRentConfirm       = "/api/v1/payments/rent/confirm"

	Tenants    = "/api/v1/tenants"
	TenantByID = "/api/v1/tenants/{id}"

	MaintenanceRequests    = "/api/v1/maintenance-requests"
	MaintenanceRequestByID = "/api/v1/maintenance-requests/{id}"

	Properties    = "/api/v1/properties"
	PropertyByID  = "/api/v1/properties/{id}"
	PropertyUnits = "/api/v1/properties/{id}/units"
	UnitByID      = "/api/v1/units/{id}"
	Staff         = "/api/v1/staff"
	StaffByID     = "/api/v1/staff/{id}"
)
