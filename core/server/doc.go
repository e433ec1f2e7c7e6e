// Package server holds the HTTP server configuration.
//
// The Config struct defines the listening port, the API key guarding every
// route and the request body cap. It is embedded by core/config and read by
// the start command.
package server
