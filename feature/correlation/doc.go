// Package correlation runs correlations of people record sets on demand.
//
// A run names its two sources, a funnel mode, the strategies of each stage
// and the reporters shaping the output:
//
//	{
//	  "a": "db:people",
//	  "b": "storage:exports/people.json",
//	  "mode": "quick",
//	  "strategies": ["same_id", "same_email_fold", "pick_last_created_at"],
//	  "reporter_a": "id_and_email",
//	  "reporter_b": "id_and_email"
//	}
//
// Sources are loaded concurrently and kept in a short TTL cache. Every run is
// logged and counted in Prometheus metrics. The report can be stored in the
// bucket as JSON or YAML.
//
// # Modes
//
//   - deep_correlation: every strategy is a correlator, every stage runs.
//   - deep_disambiguation: strategies may be correlators or disambiguators,
//     every stage runs.
//   - quick: the first strategy is a correlator, later stages only touch
//     elements that are still ambiguous.
//
// "continue" overrides the mode's default with "always" or "ambiguous".
//
// # Routes
//
//   - POST /correlate: run and return the report.
//   - GET /correlate/strategies: registered strategy and reporter names.
//   - GET /correlate/sources?ref=db:people: load a source and count it.
//   - GET /correlate/objects?prefix=exports/: list exported objects.
package correlation
