// Package utils holds small helpers shared across packages: loose value
// conversions for records decoded from untyped sources, and the presence
// test used when patching records.
package utils
