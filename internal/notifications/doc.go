// Package notifications delivers screener output to Discord, Telegram,
// and ntfy. Sinks are independent: each configured one receives every
// event, and with nothing configured the service is a no-op.
package notifications
