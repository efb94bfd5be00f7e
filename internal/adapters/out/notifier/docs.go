// Package notifier delivers notification events to external services over
// HTTP. Email and SMS channels share one transport: a JSON POST to the
// channel's configured URL. They differ only in which contact field makes
// them applicable to an event.
package notifier
