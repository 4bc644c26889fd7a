// Package rugcheck wraps the RugCheck token report API.
//
// Only the summary report endpoint is used. It returns a risk score, a list
// of named risks with severity levels, and the largest holders of the token.
package rugcheck
