// Package cache holds loaded record sets for a short TTL so repeated runs
// against the same source skip the database or storage round trip.
//
// Builds go through singleflight: when several requests miss the same key at
// once, one of them loads and the others wait for its result.
package cache
