package models

// User represents an identity resolved from a verified Firebase token.
// It is request-scoped and never persisted by this service; the identity
// provider owns the canonical record.
type User struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}
