package response

// Error codes returned in the envelope's code field.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeTenantNotFound     = "TENANT_NOT_FOUND"
	CodeAuthRequired       = "AUTHENTICATION_REQUIRED"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeUserOrTenant       = "USER_OR_TENANT_NOT_FOUND"
	CodeTenantMismatch     = "TENANT_MISMATCH"
	CodeNoteNotFound       = "NOTE_NOT_FOUND"
	CodeNoteLimitExceeded  = "NOTE_LIMIT_EXCEEDED"
	CodeInsufficientPerms  = "INSUFFICIENT_PERMISSIONS"
	CodeUnauthorizedTenant = "UNAUTHORIZED_TENANT_ACCESS"
	CodeAlreadyPro         = "ALREADY_PRO_PLAN"
	CodeInternal           = "INTERNAL_SERVER_ERROR"
	CodeEndpointNotFound   = "ENDPOINT_NOT_FOUND"
	CodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
)
