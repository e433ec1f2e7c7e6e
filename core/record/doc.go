// Package record describes the attributes of a record type so that callers can
// build strategies and reporters, patch records and compare record trees
// without reflection.
//
// A Descriptor is declared once per record type from explicit accessors:
//
//	var PersonDescriptor = record.MustDescriptor(
//		record.Attr("id", func(p Person) int { return p.ID }, func(p *Person, v int) { p.ID = v }),
//		record.Attr("email", func(p Person) string { return p.Email }, func(p *Person, v string) { p.Email = v }),
//	)
//
// Attribute kinds are inferred from the name: "id", "*_id" and "*_ids" are
// relational, "errors" and "csv_row_number" are ignored, everything else is
// simple. The name lists are computed when the descriptor is built and never
// change afterwards.
package record
