package back

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"duelscope/internal/util"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// BattleResult tells which side won a Battle.
type BattleResult int

// Possible values for BattleResult, anything else is a game without a winner.
const (
	BattleResultSide1Won BattleResult = 1
	BattleResultSide2Won BattleResult = 2
)

// A Battle is a single fight between two classes, as found in the duel logs.
type Battle struct {
	ID        util.UUIDAsBlob
	CreatedAt util.TimeAsTimestamp
	Timestamp util.TimeAsTimestamp

	// Mode is the data directory the battle was read from, LogMode the mode
	// written in the log line itself.
	Mode    string
	LogMode string
	Level   int

	Class1ID, Variant1 int
	Class2ID, Variant2 int

	Result     BattleResult
	SourceFile string
	Line       int
}

// ParseBattleLine reads a single duel log line:
//   timestamp:mode:level:class1:variant1:class2:variant2[:result]
// A missing result means side 1 won. The battle belongs to mode whatever the
// line says, lineNo identifies it within sourceFile.
func ParseBattleLine(line, mode, sourceFile string, lineNo int) (Battle, error) {
	parts := strings.Split(strings.TrimSpace(line), ":")
	if len(parts) < 7 {
		return Battle{}, fmt.Errorf("expected at least 7 fields, got %d", len(parts))
	}

	ints := make([]int, len(parts))
	for i, v := range parts {
		if i == 1 {
			continue // mode
		}

		n, err := strconv.Atoi(v)
		if err != nil {
			return Battle{}, fmt.Errorf("field #%d: %w", i, err)
		}
		ints[i] = n
	}

	ret := Battle{
		ID:         util.NewUUIDAsBlob(),
		CreatedAt:  util.TimeAsTimestamp(time.Now()),
		Timestamp:  util.TimeAsTimestamp(time.Unix(int64(ints[0]), 0)),
		Mode:       mode,
		LogMode:    parts[1],
		Level:      ints[2],
		Class1ID:   ints[3],
		Variant1:   ints[4],
		Class2ID:   ints[5],
		Variant2:   ints[6],
		Result:     BattleResultSide1Won,
		SourceFile: sourceFile,
		Line:       lineNo,
	}

	if len(parts) > 7 {
		ret.Result = BattleResult(ints[7])
	}

	return ret, nil
}

// Side1Won returns true if the first class won.
func (b Battle) Side1Won() bool {
	return b.Result == BattleResultSide1Won
}

// Side2Won returns true if the second class won.
func (b Battle) Side2Won() bool {
	return b.Result == BattleResultSide2Won
}

// insert stores the Battle, a battle already stored for the same file line is
// silently ignored.
// Returns true if the battle was new.
func (b *Battle) insert(tx *sqlx.Tx) (bool, error) {
	query, args, err := squirrel.Insert("Battle").Options("OR IGNORE").SetMap(squirrel.Eq{
		"ID":         b.ID,
		"CreatedAt":  b.CreatedAt,
		"Timestamp":  b.Timestamp,
		"Mode":       b.Mode,
		"LogMode":    b.LogMode,
		"Level":      b.Level,
		"Class1ID":   b.Class1ID,
		"Variant1":   b.Variant1,
		"Class2ID":   b.Class2ID,
		"Variant2":   b.Variant2,
		"Result":     b.Result,
		"SourceFile": b.SourceFile,
		"Line":       b.Line,
	}).ToSql()
	if err != nil {
		return false, err
	}

	res, err := tx.Exec(query, args...)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func getBattles(tx *sqlx.Tx, f Filter) ([]Battle, error) {
	query, args, err := f.selectBattles().ToSql()
	if err != nil {
		return nil, err
	}

	var ret []Battle
	if err := tx.Select(&ret, query, args...); err != nil {
		return nil, err
	}

	// LastMatches selects the latest battles first, always give them back in
	// chronological order.
	if f.LastMatches > 0 {
		for i, j := 0, len(ret)-1; i < j; i, j = i+1, j-1 {
			ret[i], ret[j] = ret[j], ret[i]
		}
	}

	return ret, nil
}
