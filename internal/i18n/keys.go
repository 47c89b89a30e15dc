// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	KeyInternalError = "internal_error"

	// Authentication
	KeyAuthRequired            = "auth.required"
	KeyAuthInvalidToken        = "auth.invalid_token"
	KeyAuthInvalidCredentials  = "auth.invalid_credentials"
	KeyAuthCredentialsRequired = "auth.credentials_required"
	KeyAuthFieldsRequired      = "auth.fields_required"
	KeyAuthUserExists          = "auth.user_exists"
	KeyAuthRegisterSuccess     = "auth.register_success"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"

	// Users
	KeyUserNotFound = "user.not_found"

	// Categories
	KeyCategoryCreated      = "category.created"
	KeyCategoryUpdated      = "category.updated"
	KeyCategoryDeleted      = "category.deleted"
	KeyCategoryNotFound     = "category.not_found"
	KeyCategoryNameRequired = "category.name_required"
	KeyCategoryHasProducts  = "category.has_products"

	// Products
	KeyProductCreated         = "product.created"
	KeyProductUpdated         = "product.updated"
	KeyProductDeleted         = "product.deleted"
	KeyProductNotFound        = "product.not_found"
	KeyProductIDRequired      = "product.id_required"
	KeyProductInvalidCategory = "product.invalid_category"
	KeyProductInvalidPrice    = "product.invalid_price"

	// Cart
	KeyCartItemAdded       = "cart.item_added"
	KeyCartItemUpdated     = "cart.item_updated"
	KeyCartItemRemoved     = "cart.item_removed"
	KeyCartItemNotFound    = "cart.item_not_found"
	KeyCartItemForbidden   = "cart.item_forbidden"
	KeyCartInvalidQuantity = "cart.invalid_quantity"
	KeyCartEmpty           = "cart.empty"

	// Orders
	KeyOrderPlaced           = "order.placed"
	KeyOrderNotFound         = "order.not_found"
	KeyOrderForbidden        = "order.forbidden"
	KeyOrderShippingRequired = "order.shipping_required"
	KeyOrderInvalidStatus    = "order.invalid_status"
	KeyOrderStatusUpdated    = "order.status_updated"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// File Upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
	KeyFileRequired      = "file.required"
	KeyFileInvalidType   = "file.invalid_type"
	KeyFileTooLarge      = "file.too_large"
	KeyFileInvalidKey    = "file.invalid_key"
	KeyFileNotFound      = "file.not_found"
	KeyFileDeleted       = "file.deleted"

	// Spreadsheet import
	KeyImportEmpty     = "import.empty"
	KeyImportCompleted = "import.completed"
)
