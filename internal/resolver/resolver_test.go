package resolver

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id    int
	score float64
	tag   string
}

func scoreOf(i item) float64 { return i.score }
func tagOf(i item) string     { return i.tag }

func newTable() *Table[item] {
	return &Table[item]{
		Rules: []Rule[item]{
			{
				Intent:  "first",
				Trigger: Contains("alpha"),
				Answer:  func(string, []item) string { return "first" },
			},
			{
				Intent:  "second",
				Trigger: ContainsAll("alpha", "beta"),
				Answer:  func(string, []item) string { return "second" },
			},
			{
				Intent:  "third",
				Trigger: And(Contains("gamma"), Not(Contains("delta"))),
				Answer: func(q string, records []item) string {
					return fmt.Sprintf("%d records for %s", len(records), LastToken(q))
				},
			},
		},
		Fallback: "no idea",
	}
}

func TestTable_Resolve_FirstMatchWins(t *testing.T) {
	table := newTable()

	// "alpha beta" satisfies both the first and second triggers.
	res := table.Resolve("alpha beta", nil)
	assert.Equal(t, Intent("first"), res.Intent)
	assert.Equal(t, "first", res.Reply)
}

func TestTable_Resolve_NormalizesQuery(t *testing.T) {
	table := newTable()

	res := table.Resolve("   GAMMA for Tokyo?  ", []item{{id: 1}, {id: 2}})
	assert.Equal(t, Intent("third"), res.Intent)
	assert.Equal(t, "2 records for tokyo", res.Reply)
}

func TestTable_Resolve_ExclusionFallsThrough(t *testing.T) {
	table := newTable()

	res := table.Resolve("gamma delta", nil)
	assert.Equal(t, IntentFallback, res.Intent)
	assert.Equal(t, "no idea", res.Reply)
}

func TestTable_FallbackIndependentOfRecords(t *testing.T) {
	table := newTable()
	queries := []string{"", "hello", "what about delta", "beta only", "ALPHA", "gamma"}
	sets := [][]item{nil, {}, {{id: 1, score: 2}}, {{id: 1}, {id: 2}, {id: 3}}}

	for _, q := range queries {
		expected := table.Classify(q)
		for _, records := range sets {
			res := table.Resolve(q, records)
			assert.Equal(t, expected, res.Intent, "query %q", q)
			assert.Equal(t, expected == IntentFallback, res.Reply == "no idea", "query %q", q)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Who has the HIGHEST GPA?  ", "who has the highest gpa?"},
		{"ＵＳＡ visa", "usa visa"}, // fullwidth folds under NFKC
		{"", ""},
		{"\tList all majors.\n", "list all majors."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in))
	}
}

func TestMaxBy_MinBy_FirstOccurrenceWinsTies(t *testing.T) {
	records := []item{{id: 1, score: 3.5}, {id: 2, score: 3.9}, {id: 3, score: 3.9}, {id: 4, score: 2.1}, {id: 5, score: 2.1}}

	best, ok := MaxBy(records, scoreOf)
	require.True(t, ok)
	assert.Equal(t, 2, best.id)

	worst, ok := MinBy(records, scoreOf)
	require.True(t, ok)
	assert.Equal(t, 4, worst.id)

	_, ok = MaxBy([]item{}, scoreOf)
	assert.False(t, ok)
	_, ok = MinBy(nil, scoreOf)
	assert.False(t, ok)
}

func TestMaxBy_Property(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 1; n < 200; n++ {
		records := make([]item, n)
		for i := range records {
			records[i] = item{id: i, score: float64(rng.Intn(10)) / 2}
		}

		best, _ := MaxBy(records, scoreOf)
		worst, _ := MinBy(records, scoreOf)
		firstMax, firstMin := -1, -1
		for i, r := range records {
			assert.LessOrEqual(t, r.score, best.score)
			assert.GreaterOrEqual(t, r.score, worst.score)
			if firstMax < 0 && r.score == best.score {
				firstMax = i
			}
			if firstMin < 0 && r.score == worst.score {
				firstMin = i
			}
		}
		assert.Equal(t, firstMax, best.id)
		assert.Equal(t, firstMin, worst.id)
	}
}

func TestDistinct(t *testing.T) {
	records := []item{{tag: "CS"}, {tag: "Bio"}, {tag: ""}, {tag: "CS"}, {tag: "Art"}}

	got := Distinct(records, tagOf)
	if diff := cmp.Diff([]string{"Art", "Bio", "CS"}, got); diff != "" {
		t.Fatalf("Distinct mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, got, Distinct(records, tagOf), "re-running yields the same result")
	assert.Empty(t, Distinct([]item{{tag: ""}}, tagOf))
}

func TestFilterEqualFold(t *testing.T) {
	records := []item{{id: 1, tag: "California"}, {id: 2, tag: "texas"}, {id: 3, tag: "CALIFORNIA"}}

	got := FilterEqualFold(records, tagOf, "california")
	assert.Equal(t, []int{1, 3}, Map(got, func(i item) int { return i.id }))
	assert.Empty(t, FilterEqualFold(records, tagOf, "ohio"))
}

func TestTake(t *testing.T) {
	records := []item{{id: 1}, {id: 2}, {id: 3}}
	assert.Len(t, Take(records, 2), 2)
	assert.Len(t, Take(records, 5), 3)
	assert.Len(t, Take(records, 0), 3)
}

func TestLastToken(t *testing.T) {
	assert.Equal(t, "california", LastToken("which students want to study in california?"))
	assert.Equal(t, "texas", LastToken("which students want to study in texas?!."))
	assert.Equal(t, "", LastToken("   "))
}

func TestBetween(t *testing.T) {
	assert.Equal(t, "education", Between("show me all education majors", "show me all", "majors"))
	assert.Equal(t, "", Between("show me all majors", "show me all", "majors"))
	assert.Equal(t, "", Between("list majors", "show me all", "majors"))
	assert.Equal(t, "", Between("show me all students", "show me all", "majors"))
}

func TestPredicates(t *testing.T) {
	assert.True(t, Contains("us ", "u.s.")(strings.ToLower("visa for the u.s.")))
	assert.False(t, ContainsAll()("anything"))
	assert.False(t, And()("anything"))
	assert.False(t, Or()("anything"))
	assert.True(t, Or(Contains("x"), Contains("y"))("y"))
	assert.True(t, Always()(""))
}
