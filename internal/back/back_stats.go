package back

import (
	"context"
	"log"
	"math"
	"sort"
	"time"

	"duelscope/pkg/duelapi"

	"github.com/jmoiron/sqlx"
)

// GetWinrates returns the win rate of every class against every other class
// it fought, in the order the pairs first appear.
func (b *Back) GetWinrates(ctx context.Context, f Filter) ([]duelapi.WinrateRecord, error) {
	start := time.Now()
	defer func() { log.Printf("info: computed winrates in %s", time.Since(start)) }()

	var battles []Battle
	if err := b.transaction(ctx, func(tx *sqlx.Tx) (err error) {
		battles, err = getBattles(tx, f)
		return err
	}); err != nil {
		return nil, err
	}

	return computeWinrates(battles, b.schools), nil
}

// GetClassStats returns the overall win rate of each class, best first.
func (b *Back) GetClassStats(ctx context.Context, f Filter) (duelapi.Stats, error) {
	start := time.Now()
	defer func() { log.Printf("info: computed class stats in %s", time.Since(start)) }()

	var battles []Battle
	if err := b.transaction(ctx, func(tx *sqlx.Tx) (err error) {
		battles, err = getBattles(tx, f)
		return err
	}); err != nil {
		return duelapi.Stats{}, err
	}

	return duelapi.Stats{
		Stats:        computeClassStats(battles, b.schools),
		TotalMatches: len(battles),
	}, nil
}

type tally struct {
	wins, total int
}

func (t tally) percent() float64 {
	if t.total == 0 {
		return 0
	}

	return math.Round(float64(t.wins)/float64(t.total)*10000) / 100
}

func computeWinrates(battles []Battle, schools SchoolMap) []duelapi.WinrateRecord {
	type pair struct {
		class1, class2 string
	}

	tallies := map[pair]*tally{}
	var order []pair
	add := func(p pair, won bool) {
		t, ok := tallies[p]
		if !ok {
			t = &tally{}
			tallies[p] = t
			order = append(order, p)
		}

		t.total++
		if won {
			t.wins++
		}
	}

	for _, v := range battles {
		class1 := schools.Name(v.Variant1, v.Class1ID)
		class2 := schools.Name(v.Variant2, v.Class2ID)
		if class1 == class2 {
			continue // mirror matches say nothing about the matchup
		}

		add(pair{class1, class2}, v.Side1Won())
		add(pair{class2, class1}, v.Side2Won())
	}

	ret := make([]duelapi.WinrateRecord, 0, len(order))
	for _, p := range order {
		ret = append(ret, duelapi.WinrateRecord{
			Class1:  p.class1,
			Class2:  p.class2,
			Winrate: tallies[p].percent(),
		})
	}

	return ret
}

func computeClassStats(battles []Battle, schools SchoolMap) []duelapi.ClassStat {
	tallies := map[string]*tally{}
	var order []string
	add := func(class string, won bool) {
		t, ok := tallies[class]
		if !ok {
			t = &tally{}
			tallies[class] = t
			order = append(order, class)
		}

		t.total++
		if won {
			t.wins++
		}
	}

	for _, v := range battles {
		add(schools.Name(v.Variant1, v.Class1ID), v.Side1Won())
		add(schools.Name(v.Variant2, v.Class2ID), v.Side2Won())
	}

	ret := make([]duelapi.ClassStat, 0, len(order))
	for _, class := range order {
		ret = append(ret, duelapi.ClassStat{
			ClassName: class,
			Winrate:   tallies[class].percent(),
			Matches:   tallies[class].total,
		})
	}

	sort.SliceStable(ret, func(i, j int) bool {
		return ret[i].Winrate > ret[j].Winrate
	})

	return ret
}
