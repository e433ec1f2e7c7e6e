package people

import (
	"fmt"
	"time"

	"data-correlator/core/correlate/presets"
	"data-correlator/core/record"
)

func id(p Person) int {
	return p.ID
}

func email(p Person) string {
	return p.Email
}

func name(p Person) string {
	return p.Name()
}

func createdAt(p Person) time.Time {
	return p.CreatedAt
}

func updatedAt(p Person) time.Time {
	return p.UpdatedAt
}

func accessor[V any](attr string) func(Person) V {
	get, err := record.Accessor[Person, V](Descriptor, attr)
	must(err)
	return get
}

// NewRegistry returns the strategies and reporters available to people runs.
//
// Correlators: same_id, same_email, same_email_fold, same_name,
// same_first_name, same_last_name, same_account_id,
// same_created_at_with_minute_tolerance, same_updated_at_with_minute_tolerance.
//
// Disambiguators: pick_last, pick_last_created_at, pick_last_updated_at,
// pick_same_created_at_with_minute_tolerance,
// pick_last_same_created_at_with_minute_tolerance, nullify.
//
// Reporters: identity, inspect, id, email, name, id_and_email, created_at,
// email_and_created_at.
func NewRegistry() *presets.Registry[Person, Person] {
	r := presets.NewRegistry[Person, Person]()

	must(r.RegisterCorrelator("same_id", presets.SameField(id)))
	must(r.RegisterCorrelator("same_email", presets.SameField(email)))
	must(r.RegisterCorrelator("same_email_fold", presets.SameFold(email, email)))
	must(r.RegisterCorrelator("same_name", presets.SameField(name)))
	must(r.RegisterCorrelator("same_first_name", presets.SameField(accessor[string]("first_name"))))
	must(r.RegisterCorrelator("same_last_name", presets.SameField(accessor[string]("last_name"))))
	must(r.RegisterCorrelator("same_account_id", presets.SameField(accessor[int]("account_id"))))
	must(r.RegisterCorrelator("same_created_at_with_minute_tolerance", presets.SameTimeWithMinuteTolerance(createdAt, createdAt)))
	must(r.RegisterCorrelator("same_updated_at_with_minute_tolerance", presets.SameTimeWithMinuteTolerance(updatedAt, updatedAt)))

	must(r.RegisterDisambiguator("pick_last", presets.PickLast[Person, Person]()))
	must(r.RegisterDisambiguator("pick_last_created_at", presets.PickLastBy[Person](createdAt)))
	must(r.RegisterDisambiguator("pick_last_updated_at", presets.PickLastBy[Person](updatedAt)))
	must(r.RegisterDisambiguator("pick_same_created_at_with_minute_tolerance", presets.PickSameTimeWithMinuteTolerance(createdAt, createdAt)))
	must(r.RegisterDisambiguator("pick_last_same_created_at_with_minute_tolerance", presets.PickLastSameTimeWithMinuteTolerance(createdAt, createdAt)))
	must(r.RegisterDisambiguator("nullify", presets.Nullify[Person, Person]()))

	reporter := func(n string, rep func(Person) any) {
		must(r.RegisterReporter(n, rep, rep))
	}
	reporter("identity", presets.Any(presets.Identity[Person]()))
	reporter("inspect", presets.Any(presets.Inspect[Person]()))
	reporter("id", presets.Any(id))
	reporter("email", presets.Any(email))
	reporter("name", presets.Any(name))
	reporter("id_and_email", presets.Any(presets.Joined(id, email)))
	reporter("created_at", presets.Any(createdAt))
	reporter("email_and_created_at", presets.Any(presets.Joined(email, formatTime(createdAt))))

	return r
}

func formatTime(at func(Person) time.Time) func(Person) string {
	return func(p Person) string { return at(p).UTC().Format(time.RFC3339) }
}

func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("people: %v", err))
	}
}
