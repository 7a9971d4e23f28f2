package kb

import (
	"sort"

	"github.com/hyperengineering/packvec/internal/types"
)

// Summary holds aggregate counts over the loaded knowledge base.
type Summary struct {
	TotalItems   int
	ByCategory   map[string]int
	ByTravelType map[string]int
	ByImportance map[string]int
}

// importanceRank orders importance levels from most to least critical for
// reporting. Unknown levels sort last.
var importanceRank = map[string]int{
	types.ImportanceCritical: 4,
	types.ImportanceHigh:     3,
	types.ImportanceMedium:   2,
	types.ImportanceLow:      1,
}

// Summarize computes distribution statistics for the knowledge base.
func Summarize(items []types.KnowledgeItem) Summary {
	s := Summary{
		TotalItems:   len(items),
		ByCategory:   make(map[string]int),
		ByTravelType: make(map[string]int),
		ByImportance: make(map[string]int),
	}
	for _, item := range items {
		s.ByCategory[item.Category]++
		s.ByTravelType[item.TravelType]++
		s.ByImportance[item.Importance]++
	}
	return s
}

// Categories returns category names in alphabetical order.
func (s Summary) Categories() []string {
	return sortedKeys(s.ByCategory)
}

// TravelTypes returns travel type names in alphabetical order.
func (s Summary) TravelTypes() []string {
	return sortedKeys(s.ByTravelType)
}

// ImportanceLevels returns importance levels from critical down to low.
func (s Summary) ImportanceLevels() []string {
	keys := sortedKeys(s.ByImportance)
	sort.SliceStable(keys, func(i, j int) bool {
		return importanceRank[keys[i]] > importanceRank[keys[j]]
	})
	return keys
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
