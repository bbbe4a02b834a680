// Package logging provides structured zerolog logging for citytable.
//
// Loggers travel on the context: commands attach a logger and a ULID trace ID
// once during startup and everything below (HTTP client, cache, TUI commands)
// retrieves it with FromContext. Log records carry "component" and
// "operation" fields so a single trace can be followed through a session.
package logging
