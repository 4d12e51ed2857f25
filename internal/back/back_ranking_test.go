package back // nolint:testpackage

import (
	"duelscope/internal/util"
	"testing"
	"time"
)

func TestPeriodCompute(t *testing.T) {
	type entry struct {
		fn              func(time.Time) time.Time
		input, expected string
	}

	cases := []entry{
		{currentPeriodStart, "2020-05-15 02:00 CET", "2020-05-11"},
		{currentPeriodStart, "2020-05-11 02:00 CET", "2020-05-11"},
		{currentPeriodStart, "2020-05-10 02:00 CET", "2020-05-04"},

		{nextPeriodStart, "2020-05-15 02:00 CET", "2020-05-18"},
		{nextPeriodStart, "2020-05-11 02:00 CET", "2020-05-18"},
		{nextPeriodStart, "2020-05-10 02:00 CET", "2020-05-11"},

		// The tricky cases, where intepreting dow in the wrong TZ could mess
		// up the results.
		{currentPeriodStart, "2020-05-15 00:00 CET", "2020-05-11"},
		{currentPeriodStart, "2020-05-11 00:00 CET", "2020-05-04"},
		{currentPeriodStart, "2020-05-10 00:00 CET", "2020-05-04"},
	}

	for k, v := range cases {
		input, err := time.Parse("2006-01-02 15:04 MST", v.input)
		if err != nil {
			t.Fatal(err)
		}

		actual := v.fn(input).Format("2006-01-02")
		if actual != v.expected {
			t.Errorf("case #%d: expected %s got %s", k, v.expected, actual)
		}
	}
}

func TestComputeClassRatings(t *testing.T) {
	week := 7 * 24 * time.Hour
	start := time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)

	var battles []Battle
	for i := 0; i < 30; i++ {
		b := fight(1, 2, BattleResultSide1Won)
		b.Timestamp = util.TimeAsTimestamp(start.Add(time.Duration(i/10) * week))
		battles = append(battles, b)
	}
	battles = append(battles, fight(3, 3, BattleResultSide1Won)) // mirror
	battles[len(battles)-1].Timestamp = util.TimeAsTimestamp(start.Add(3 * week))

	ratings := computeClassRatings(battles, testSchools())
	if len(ratings) != 2 {
		t.Fatalf("expected 2 rated classes, got %v", ratings)
	}

	if ratings[0].ClassName != "A" || ratings[1].ClassName != "B" {
		t.Errorf("expected A to be rated above B, got %v", ratings)
	}

	if ratings[0].Rating <= ratings[1].Rating {
		t.Errorf("expected a rating gap, got %v", ratings)
	}

	if ratings[0].Matches != 30 || ratings[1].Matches != 30 {
		t.Errorf("unexpected match counts %v", ratings)
	}
}
