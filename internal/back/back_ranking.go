package back

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	glicko "github.com/zelenin/go-glicko2"
)

// ClassRating is the Glicko-2 rating of a class, computed as if each class
// were a player of a weekly ladder.
type ClassRating struct {
	ClassName  string  `json:"class_name"`
	Rating     float64 `json:"rating"`
	Deviation  float64 `json:"deviation"`
	Volatility float64 `json:"volatility"`
	Matches    int     `json:"matches"`
}

// GetClassRatings rates every class against the others, best first.
func (b *Back) GetClassRatings(ctx context.Context, f Filter) ([]ClassRating, error) {
	var battles []Battle
	if err := b.transaction(ctx, func(tx *sqlx.Tx) (err error) {
		battles, err = getBattles(tx, f)
		return err
	}); err != nil {
		return nil, err
	}

	return computeClassRatings(battles, b.schools), nil
}

func computeClassRatings(battles []Battle, schools SchoolMap) []ClassRating {
	glickoPlayers := map[string]*glicko.Player{}
	matches := map[string]int{}

	// battles are sorted chronologically, cut them by rating period.
	for i := 0; i < len(battles); {
		periodEnd := nextPeriodStart(battles[i].Timestamp.Time())
		j := i
		for j < len(battles) && battles[j].Timestamp.Time().Before(periodEnd) {
			j++
		}

		computePeriod(battles[i:j], schools, glickoPlayers, matches)
		i = j
	}

	ret := make([]ClassRating, 0, len(glickoPlayers))
	for name, p := range glickoPlayers {
		r := p.Rating()
		ret = append(ret, ClassRating{
			ClassName:  name,
			Rating:     r.R(),
			Deviation:  r.Rd(),
			Volatility: r.Sigma(),
			Matches:    matches[name],
		})
	}

	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Rating == ret[j].Rating {
			return ret[i].ClassName < ret[j].ClassName
		}
		return ret[i].Rating > ret[j].Rating
	})

	return ret
}

func computePeriod(
	battles []Battle,
	schools SchoolMap,
	glickoPlayers map[string]*glicko.Player,
	matches map[string]int,
) {
	getGlickoPlayer := func(name string) *glicko.Player {
		p, ok := glickoPlayers[name]
		if !ok {
			p = glicko.NewPlayer(glicko.NewRating(
				glicko.RATING_BASE_R,
				glicko.RATING_BASE_RD,
				glicko.RATING_BASE_SIGMA,
			))
			glickoPlayers[name] = p
		}
		return p
	}

	period := glicko.NewRatingPeriod()
	// Add players so Glicko-2 know to ensure inactive classes decay.
	for k := range glickoPlayers {
		period.AddPlayer(glickoPlayers[k])
	}

	for _, v := range battles {
		class1 := schools.Name(v.Variant1, v.Class1ID)
		class2 := schools.Name(v.Variant2, v.Class2ID)
		if class1 == class2 {
			continue
		}

		p1, p2 := getGlickoPlayer(class1), getGlickoPlayer(class2)
		matches[class1]++
		matches[class2]++

		switch {
		case v.Side1Won():
			period.AddMatch(p1, p2, glicko.MATCH_RESULT_WIN)
		case v.Side2Won():
			period.AddMatch(p1, p2, glicko.MATCH_RESULT_LOSS)
		default:
			period.AddMatch(p1, p2, glicko.MATCH_RESULT_DRAW)
		}
	}

	start := time.Now()
	period.Calculate()
	log.Printf(
		"debug: rated %d battles and %d classes in %s",
		len(battles), len(glickoPlayers),
		time.Since(start),
	)
}

// currentPeriodStart returns the previous monday at 00:00 UTC.
func currentPeriodStart(t time.Time) time.Time {
	t = t.UTC()

	if wd := t.Weekday(); wd == time.Sunday {
		t = t.AddDate(0, 0, -6)
	} else {
		t = t.AddDate(0, 0, -int(wd)+1)
	}

	return t.Truncate(24 * time.Hour)
}

// nextPeriodStart returns the next monday at 00:00 UTC.
func nextPeriodStart(t time.Time) time.Time {
	return currentPeriodStart(t).AddDate(0, 0, 7)
}
