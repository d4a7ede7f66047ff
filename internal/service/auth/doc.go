// Package auth issues and verifies bearer tokens, hashes credentials and
// implements the signup, signin and change-password flows.
package auth
