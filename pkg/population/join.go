package population

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/samber/lo"
)

// JoinResult holds the outcome of Join.
type JoinResult struct {
	// Pairs are the resolvable cities with their province, in city input order.
	Pairs []Pair

	// Unresolved are the cities whose province key matched no province,
	// in city input order.
	Unresolved []City
}

// UnresolvedKeys returns the distinct province keys that could not be
// resolved, in the order they were first seen.
func (r JoinResult) UnresolvedKeys() []string {
	seen := mapset.NewThreadUnsafeSet[string]()
	keys := make([]string, 0, len(r.Unresolved))
	for _, city := range r.Unresolved {
		if seen.Add(city.ProvinceKey) {
			keys = append(keys, city.ProvinceKey)
		}
	}
	return keys
}

// IndexProvinces maps each province key to its province.
// Duplicate keys are not an error: the last province with a given key wins.
func IndexProvinces(provinces []Province) map[string]Province {
	return lo.KeyBy(provinces, func(p Province) string {
		return p.Key
	})
}

// Join resolves every city to its province. The result is deterministic for a
// given input: same pairs in the same order and the same unresolved set.
func Join(provinces []Province, cities []City) JoinResult {
	byKey := IndexProvinces(provinces)

	result := JoinResult{
		Pairs: make([]Pair, 0, len(cities)),
	}
	for _, city := range cities {
		province, ok := byKey[city.ProvinceKey]
		if !ok {
			result.Unresolved = append(result.Unresolved, city)
			continue
		}
		result.Pairs = append(result.Pairs, Pair{Province: province, City: city})
	}
	return result
}
