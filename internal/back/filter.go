package back

import (
	"time"

	"github.com/Masterminds/squirrel"
	"gopkg.in/guregu/null.v4"
)

// Filter restricts the battles used to compute statistics.
// The zero value selects everything.
type Filter struct {
	Mode string

	// Inclusive bounds, zero times are unbounded.
	Start, End time.Time

	Level null.Int

	// LastMatches only keeps the N most recent battles if > 0.
	LastMatches int

	// LatestOnly only keeps battles from the most recently modified log file.
	LatestOnly bool
}

func (f Filter) selectBattles() squirrel.SelectBuilder {
	q := squirrel.Select("*").From("Battle")

	if f.Mode != "" {
		q = q.Where(squirrel.Eq{"Mode": f.Mode})
	}
	if !f.Start.IsZero() {
		q = q.Where(squirrel.GtOrEq{"Timestamp": f.Start.Unix()})
	}
	if !f.End.IsZero() {
		q = q.Where(squirrel.LtOrEq{"Timestamp": f.End.Unix()})
	}
	if f.Level.Valid {
		q = q.Where(squirrel.Eq{"Level": f.Level.Int64})
	}

	if f.LatestOnly {
		if f.Mode != "" {
			q = q.Where(`SourceFile = (
                SELECT Name FROM ImportedFile WHERE Mode = ?
                ORDER BY ModifiedAt DESC, Name DESC LIMIT 1)`, f.Mode)
		} else {
			q = q.Where(`SourceFile = (
                SELECT Name FROM ImportedFile
                ORDER BY ModifiedAt DESC, Name DESC LIMIT 1)`)
		}
	}

	if f.LastMatches > 0 {
		return q.OrderBy("Timestamp DESC", "rowid DESC").Limit(uint64(f.LastMatches))
	}

	return q.OrderBy("Timestamp ASC", "rowid ASC")
}
