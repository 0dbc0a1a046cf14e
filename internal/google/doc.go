// Package google builds document-service authorization contexts.
//
// The document service authenticates through caller-supplied headers; this
// package renders bearer tokens from different sources (static values,
// environment variables, oauth2 token sources) into docs.AuthContext values.
// Token acquisition and refresh themselves are the token source's concern,
// not this package's.
package google
