// Package validator checks request structs against their `validate` tags.
//
// Failures come back as a field-to-message map so the router can render
// them next to the error message.
package validator
