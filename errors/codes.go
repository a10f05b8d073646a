package errors

// ErrorCode is a machine-readable error code. Codes are part of the wire
// contract and appear verbatim in the response body.
type ErrorCode string

// Validation and resource errors
const (
	// CodeInvalidPayload indicates client-supplied data failed validation.
	CodeInvalidPayload ErrorCode = "invalid_payload"
	// CodeEmailExists indicates a registration conflict on the email.
	CodeEmailExists ErrorCode = "email_exists"
	// CodeNotFound indicates the requested resource was not found.
	CodeNotFound ErrorCode = "not_found"
	// CodeInvalidID indicates a path identifier that cannot be parsed.
	CodeInvalidID ErrorCode = "invalid_id"
)

// Authentication errors
const (
	// CodeInvalidCredentials indicates a failed login attempt.
	CodeInvalidCredentials ErrorCode = "invalid_credentials"
	// CodeUnauthorized indicates a missing or unverifiable bearer token.
	CodeUnauthorized ErrorCode = "unauthorized"
	// CodeAuthError indicates token issuance failed.
	CodeAuthError ErrorCode = "auth_error"
)

// Dependency errors
const (
	// CodeDBUnavailable indicates the document store is not connected.
	CodeDBUnavailable ErrorCode = "db_unavailable"
	// CodeDBError indicates a store operation failed.
	CodeDBError ErrorCode = "db_error"
	// CodeCatalogKeyMissing indicates the upstream catalog key is unset.
	CodeCatalogKeyMissing ErrorCode = "tmdb_key_missing"
	// CodeExternalAPI indicates the upstream catalog call failed.
	CodeExternalAPI ErrorCode = "external_api_error"
	// CodeInternal indicates an unexpected server error.
	CodeInternal ErrorCode = "internal_error"
)
