package back // nolint:testpackage

import (
	"duelscope/internal/config"
	"duelscope/pkg/duelapi"
	"reflect"
	"testing"
)

func testSchools() SchoolMap {
	return NewSchoolMap([]config.School{
		{Variant: 0, ClassID: 1, Name: "A"},
		{Variant: 0, ClassID: 2, Name: "B"},
		{Variant: 0, ClassID: 3, Name: "C"},
	})
}

func fight(class1, class2 int, result BattleResult) Battle {
	return Battle{Class1ID: class1, Class2ID: class2, Result: result}
}

func TestComputeWinrates(t *testing.T) {
	battles := []Battle{
		fight(1, 2, BattleResultSide1Won),
		fight(2, 1, BattleResultSide1Won),
		fight(1, 2, BattleResultSide1Won),
		fight(1, 1, BattleResultSide1Won), // mirror, ignored
		fight(3, 1, 0),                    // no winner
	}

	expected := []duelapi.WinrateRecord{
		{Class1: "A", Class2: "B", Winrate: 66.67},
		{Class1: "B", Class2: "A", Winrate: 33.33},
		{Class1: "C", Class2: "A", Winrate: 0},
		{Class1: "A", Class2: "C", Winrate: 0},
	}

	actual := computeWinrates(battles, testSchools())
	if !reflect.DeepEqual(actual, expected) {
		t.Errorf("expected %v\ngot %v", expected, actual)
	}
}

func TestComputeWinratesEmpty(t *testing.T) {
	actual := computeWinrates(nil, testSchools())
	if actual == nil || len(actual) != 0 {
		t.Errorf("expected an empty non-nil slice, got %#v", actual)
	}
}

func TestComputeClassStats(t *testing.T) {
	battles := []Battle{
		fight(1, 2, BattleResultSide2Won),
		fight(2, 3, BattleResultSide1Won),
		fight(3, 1, BattleResultSide1Won),
		fight(1, 1, BattleResultSide1Won),
	}

	expected := []duelapi.ClassStat{
		{ClassName: "B", Winrate: 100, Matches: 2},
		{ClassName: "C", Winrate: 50, Matches: 2},
		{ClassName: "A", Winrate: 25, Matches: 4},
	}

	actual := computeClassStats(battles, testSchools())
	if !reflect.DeepEqual(actual, expected) {
		t.Errorf("expected %v\ngot %v", expected, actual)
	}
}
