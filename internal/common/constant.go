// Package common contains shared constants and sentinel errors used across
// Onepass components.
package common

// SessionTokenHeaderName is the gRPC metadata key used to carry the
// session token on outbound requests.
const SessionTokenHeaderName = "session_token"

// SecretKeySize is the length of the per-user secret key and of every
// derived key, in bytes.
const SecretKeySize = 32
