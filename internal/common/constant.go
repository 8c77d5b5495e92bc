// Package common contains shared constants, sentinel errors and small helpers
// used by both the clinicsite client and the site server.
package common

const (
	// AuthorizationHeaderName is the HTTP header carrying the bearer token
	// on requests to the CMS.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName is attached to every outbound CMS request.
	RequestIDHeaderName = "X-Request-ID"

	// CredentialCacheKey is the key the credential snapshot is stored under
	// in every storage tier.
	CredentialCacheKey = "auth_cache"
)
