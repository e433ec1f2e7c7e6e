// Package middleware groups the Fiber middleware of the HTTP server.
//
//   - rayid: tags every request with a ray id (X-Ray-ID) stored in the
//     "ray_id" local, which logger.WithRayID picks up.
//   - auth: rejects requests lacking the configured X-API-Key. Paths such as
//     /metrics can be exempted.
//
// rayid is registered first so even rejected requests are traceable.
package middleware
