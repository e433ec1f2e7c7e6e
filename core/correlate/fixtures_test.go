package correlate

import "fmt"

// person is a minimal record used across the engine tests.
type person struct {
	ID        int
	FirstName string
	LastName  string
	Email     string
}

// createList builds n people whose string fields carry the given prefix.
func createList(n int, prefix string) []*person {
	people := make([]*person, n)
	for i := range people {
		people[i] = &person{
			ID:        i,
			FirstName: fmt.Sprintf("%s_FN_%d", prefix, i),
			LastName:  fmt.Sprintf("%s_LN_%d", prefix, i),
			Email:     fmt.Sprintf("%s_%d@test.com", prefix, i),
		}
	}
	return people
}

// tiedSets builds two A-records and eight B-records where the first four B share
// A[0]'s id and the last four share A[1]'s id. Within each block the first two
// share the email and only the first one also shares the first name, so the
// records matching on every field are A[0]==B[0] and A[1]==B[4].
func tiedSets() ([]*person, []*person) {
	setA := createList(2, "A")
	setB := createList(8, "B")

	first4, last4 := setB[:4], setB[4:]
	for _, b := range first4 {
		b.ID = setA[0].ID
	}
	for _, b := range last4 {
		b.ID = setA[1].ID
	}
	for _, b := range first4[:2] {
		b.Email = setA[0].Email
	}
	for _, b := range last4[:2] {
		b.Email = setA[1].Email
	}
	first4[0].FirstName = setA[0].FirstName
	last4[0].FirstName = setA[1].FirstName

	return setA, setB
}

func sameID(a, b *person) bool        { return a.ID == b.ID }
func sameEmail(a, b *person) bool     { return a.Email == b.Email }
func sameFirstName(a, b *person) bool { return a.FirstName == b.FirstName }

func personStrategies() []CorrelationStrategy[*person, *person] {
	return []CorrelationStrategy[*person, *person]{sameID, sameEmail, sameFirstName}
}

func pickLast(_ *person, bs []*person) []*person {
	return []*person{bs[len(bs)-1]}
}

func nullify(_ *person, bs []*person) []*person {
	return make([]*person, len(bs))
}

func moreThanTwo(_ *person, bs []*person) bool { return len(bs) > 2 }

func byID(p *person) int       { return p.ID }
func byEmail(p *person) string { return p.Email }
