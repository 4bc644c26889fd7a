// Package safety classifies token risk from RugCheck reports.
package safety
