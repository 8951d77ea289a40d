package constants

// Database table names
const (
	TableUsers                  = "users"
	TableEntitlementDefinitions = "entitlement_definitions"
	TableUserEntitlements       = "user_entitlements"
)

// Gin context keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
)
