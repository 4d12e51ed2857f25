package back

import (
	"duelscope/internal/config"
	"fmt"
)

type schoolKey struct {
	variant, classID int
}

// SchoolMap resolves the numeric (variant, class) pairs found in duel logs
// to display names.
type SchoolMap map[schoolKey]string

func NewSchoolMap(schools []config.School) SchoolMap {
	ret := make(SchoolMap, len(schools))
	for _, v := range schools {
		ret[schoolKey{v.Variant, v.ClassID}] = v.Name
	}

	return ret
}

// Name returns the display name of a class, unknown classes are still given
// a stable name so they can be told apart.
func (m SchoolMap) Name(variant, classID int) string {
	if name, ok := m[schoolKey{variant, classID}]; ok {
		return name
	}

	return fmt.Sprintf("Unknown %d", classID)
}
