// Package constants holds shared provider identifiers used by config-driven
// infrastructure selection.
package constants

const (
	// StoreProviderFirebase selects the Realtime Database document store.
	StoreProviderFirebase = "firebase"

	// StoreProviderMemory selects the in-process document store.
	StoreProviderMemory = "memory"

	// AuthProviderFirebase selects Firebase ID token verification.
	AuthProviderFirebase = "firebase"

	// AuthProviderLocal selects HS256 token verification for development.
	AuthProviderLocal = "local"

	// PubSubProviderLocal selects the local HTTP event publisher.
	PubSubProviderLocal = "local"

	// PubSubProviderGoogle selects the Google Pub/Sub event publisher.
	PubSubProviderGoogle = "google"
)
