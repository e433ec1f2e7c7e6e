// Package presets provides ready-made correlation strategies, disambiguation
// stages and reporters.
//
// Presets never inspect records by field name. Every preset is built from
// accessor closures supplied by the caller, so the same constructor serves
// any record type:
//
//	byEmail := presets.SameFold(
//		func(p *people.Person) string { return p.Email },
//		func(p *people.Person) string { return p.Email },
//	)
//	latest := presets.PickLastBy[*people.Person](func(p *people.Person) time.Time { return p.CreatedAt })
//	f := correlate.NewQuickFunnel(byEmail, latest)
package presets
