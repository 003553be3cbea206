package errors

// Error codes returned in the "error" field of every failed response.
// Format: CATEGORY_SPECIFIC_DETAIL. The storefront maps these to copy.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN"
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Cart (CART_) ====================
	CartInvalidItem       = "CART_INVALID_ITEM"
	CartInsufficientStock = "CART_INSUFFICIENT_STOCK"
	CartPersistFailed     = "CART_PERSIST_FAILED"

	// ==================== Catalog (CATALOG_) ====================
	CatalogProductNotFound = "CATALOG_PRODUCT_NOT_FOUND"
	CatalogInvalidSort     = "CATALOG_INVALID_SORT"
	CatalogInvalidFacet    = "CATALOG_INVALID_FACET"
	CatalogInvalidPrice    = "CATALOG_INVALID_PRICE"

	// ==================== Orders (ORDER_) ====================
	OrderEmptyCart = "ORDER_EMPTY_CART"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadNotConfigured   = "UPLOAD_NOT_CONFIGURED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
