// Package common contains shared constants and sentinel errors used across
// the dbkeeper components.
package common

// Default locations of the store and credential files, relative to the
// working directory.
const (
	DefaultStorePath      = "database.db"
	DefaultCredentialPath = "password.txt"
)

// MaxArgLen is the longest argument the console accepts after a verb.
// Longer input is truncated, not rejected.
const MaxArgLen = 15
