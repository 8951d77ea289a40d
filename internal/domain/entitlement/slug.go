package entitlement

import "strings"

const (
	// FreeAccessSlug is the sentinel access tag that gates nothing. Content
	// tagged with it is viewable by anyone, authenticated or not.
	FreeAccessSlug = "free"

	// AllAccessSlug is the distinguished membership that subsumes every
	// other gated tag.
	AllAccessSlug = "membership:all-access"

	// membershipPrefix marks subscription-class entitlements. Everything
	// else is a one-time purchase.
	membershipPrefix = "membership:"
)

// IsMembershipSlug reports whether slug names a recurring membership tier.
func IsMembershipSlug(slug string) bool {
	return strings.HasPrefix(slug, membershipPrefix)
}

// KindForSlug derives the catalog kind from the slug naming convention.
func KindForSlug(slug string) Kind {
	if IsMembershipSlug(slug) {
		return KindMembership
	}
	return KindCourse
}
