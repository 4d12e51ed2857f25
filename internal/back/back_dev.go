package back

import (
	"context"
	"time"

	"duelscope/internal/util"
)

// LoadFixtures inserts a handful of battles for quick testing during
// development, using class IDs 1 to 4 in variant 0.
func (b *Back) LoadFixtures(ctx context.Context, mode string) error {
	start := time.Now().Add(-24 * time.Hour).Truncate(time.Hour)
	fights := []struct {
		class1, class2 int
		result         BattleResult
	}{
		{1, 2, BattleResultSide1Won},
		{1, 2, BattleResultSide1Won},
		{1, 2, BattleResultSide2Won},
		{2, 3, BattleResultSide1Won},
		{3, 1, BattleResultSide2Won},
		{3, 4, BattleResultSide1Won},
		{4, 1, BattleResultSide1Won},
		{4, 2, BattleResultSide2Won},
		{2, 4, BattleResultSide1Won},
	}

	battles := make([]Battle, 0, len(fights))
	for k, v := range fights {
		battles = append(battles, Battle{
			ID:         util.NewUUIDAsBlob(),
			CreatedAt:  util.TimeAsTimestamp(time.Now()),
			Timestamp:  util.TimeAsTimestamp(start.Add(time.Duration(k) * time.Minute)),
			Mode:       mode,
			LogMode:    mode,
			Level:      1,
			Class1ID:   v.class1,
			Class2ID:   v.class2,
			Result:     v.result,
			SourceFile: "fixtures",
			Line:       k + 1,
		})
	}

	return b.InsertBattles(ctx, battles)
}
