// Package population defines the reference and detail data shared by the
// report pipeline and the joiner that resolves cities to their provinces.
//
// Reference data (provinces and cities) establishes the join key space. A city
// whose province key has no matching province is dropped by Join; that is not
// an error, the caller decides whether to report it.
//
// Example usage:
//
//	result := population.Join(provinces, cities)
//	for _, pair := range result.Pairs {
//		// one lookup per resolvable city, in input order
//	}
package population
