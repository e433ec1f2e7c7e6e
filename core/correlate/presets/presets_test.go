package presets

import (
	"testing"
	"time"

	"data-correlator/core/correlate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type account struct {
	ID        int
	Email     string
	CreatedAt time.Time
}

var base = time.Date(2015, 8, 12, 10, 30, 0, 0, time.UTC)

func accountID(a account) int              { return a.ID }
func accountEmail(a account) string        { return a.Email }
func accountCreatedAt(a account) time.Time { return a.CreatedAt }

// TestCorrelators tests the pairwise presets.
func TestCorrelators(t *testing.T) {
	tests := []struct {
		name     string
		strategy correlate.CorrelationStrategy[account, account]
		a, b     account
		want     bool
	}{
		{"Same id", SameField(accountID), account{ID: 1}, account{ID: 1}, true},
		{"Different id", SameField(accountID), account{ID: 1}, account{ID: 2}, false},
		{"Same email exactly", SameField(accountEmail), account{Email: "a@test.com"}, account{Email: "a@test.com"}, true},
		{"Email differs by case", SameFold(accountEmail, accountEmail), account{Email: "A@Test.com"}, account{Email: "a@test.COM"}, true},
		{"Composed and decomposed accents", SameFold(accountEmail, accountEmail), account{Email: "jos\u00e9@test.com"}, account{Email: "JOSE\u0301@test.com"}, true},
		{"Different email", SameFold(accountEmail, accountEmail), account{Email: "a@test.com"}, account{Email: "b@test.com"}, false},
		{
			"Seconds apart within a minute",
			SameTimeWithMinuteTolerance(accountCreatedAt, accountCreatedAt),
			account{CreatedAt: base.Add(2 * time.Second)},
			account{CreatedAt: base.Add(59*time.Second + 999*time.Millisecond)},
			true,
		},
		{
			"Across a minute boundary",
			SameTimeWithMinuteTolerance(accountCreatedAt, accountCreatedAt),
			account{CreatedAt: base.Add(59 * time.Second)},
			account{CreatedAt: base.Add(61 * time.Second)},
			false,
		},
		{
			"Same instant in another zone",
			SameTimeWithMinuteTolerance(accountCreatedAt, accountCreatedAt),
			account{CreatedAt: base},
			account{CreatedAt: base.In(time.FixedZone("CEST", 2*60*60))},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.strategy(tt.a, tt.b))
		})
	}
}

// TestSame_DifferentTypes tests matching records of different types through their accessors.
func TestSame_DifferentTypes(t *testing.T) {
	byID := Same(accountID, func(id int) int { return id })

	mapping, err := correlate.Correlate([]account{{ID: 1}, {ID: 3}}, []int{1, 2, 1}, byID)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1}, mapping[0].Matches)
	assert.Empty(t, mapping[1].Matches)
}

// TestDisambiguators tests the subset-level presets.
func TestDisambiguators(t *testing.T) {
	a := account{ID: 1, CreatedAt: base.Add(10 * time.Second)}
	early := account{ID: 10, CreatedAt: base.Add(-time.Hour)}
	inMinute := account{ID: 11, CreatedAt: base.Add(30 * time.Second)}
	inMinuteLater := account{ID: 12, CreatedAt: base.Add(45 * time.Second)}
	tie := account{ID: 13, CreatedAt: base.Add(45 * time.Second)}
	late := account{ID: 14, CreatedAt: base.Add(time.Hour)}

	tests := []struct {
		name       string
		strategy   correlate.DisambiguationStrategy[account, account]
		candidates []account
		want       []account
	}{
		{"Pick last", PickLast[account, account](), []account{late, early, inMinute}, []account{inMinute}},
		{"Pick last of nothing", PickLast[account, account](), nil, []account{}},
		{"Pick latest", PickLastBy[account](accountCreatedAt), []account{late, early, inMinute}, []account{late}},
		{"Pick latest prefers the last tie", PickLastBy[account](accountCreatedAt), []account{tie, inMinuteLater}, []account{inMinuteLater}},
		{
			"Pick same minute",
			PickSameTimeWithMinuteTolerance(accountCreatedAt, accountCreatedAt),
			[]account{early, inMinuteLater, late, inMinute},
			[]account{inMinuteLater, inMinute},
		},
		{
			"Pick latest in the same minute",
			PickLastSameTimeWithMinuteTolerance(accountCreatedAt, accountCreatedAt),
			[]account{early, inMinuteLater, late, inMinute},
			[]account{inMinuteLater},
		},
		{
			"Nothing in the same minute",
			PickLastSameTimeWithMinuteTolerance(accountCreatedAt, accountCreatedAt),
			[]account{early, late},
			[]account{},
		},
		{"Nullify", Nullify[account, account](), []account{early, late}, []account{{}, {}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.strategy(a, tt.candidates))
		})
	}
}

// TestReporters tests the projection presets.
func TestReporters(t *testing.T) {
	acc := account{ID: 29, Email: "test@test.com"}

	assert.Equal(t, acc, Identity[account]()(acc))
	assert.Equal(t, "{ID:29 Email:test@test.com CreatedAt:0001-01-01 00:00:00 +0000 UTC}", Inspect[account]()(acc))
	assert.Equal(t, "29:test@test.com", Joined(accountID, accountEmail)(acc))
}

// TestPresets_InQuickFunnel tests presets composed the way callers chain them.
func TestPresets_InQuickFunnel(t *testing.T) {
	setA := []account{{ID: 1, Email: "a@test.com", CreatedAt: base}}
	setB := []account{
		{ID: 1, Email: "A@TEST.COM", CreatedAt: base.Add(-time.Hour)},
		{ID: 2, Email: "a@test.com", CreatedAt: base.Add(20 * time.Second)},
		{ID: 3, Email: "b@test.com", CreatedAt: base},
	}

	f := correlate.NewQuickFunnel(
		SameFold(accountEmail, accountEmail),
		PickSameTimeWithMinuteTolerance(accountCreatedAt, accountCreatedAt),
		Nullify[account, account](),
	)
	report, err := correlate.ReportWithReporters(f, setA, setB, accountID, accountID)
	require.NoError(t, err)
	assert.Equal(t, []correlate.Pair[int, int]{{Key: 1, Match: 2}}, report.OneToOne)
	assert.Equal(t, []int{1, 3}, report.NoCorrelationB)
}
