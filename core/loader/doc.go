// Package loader registers the features served by the HTTP server.
//
// Each feature implements Feature:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager loads enabled features in registration order and aborts the
// startup on the first Load error.
package loader
