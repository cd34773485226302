package geo

import "sort"

// Point is the visitor's resolved position.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Positioned is anything with optional coordinates: vendors, destinations.
type Positioned interface {
	Position() (lat, lng float64, ok bool)
}

// Ranked pairs an entity with its computed distance. DistanceKm is nil when
// the entity has no usable coordinates.
type Ranked[T Positioned] struct {
	Item       T
	DistanceKm *float64
}

// Rank annotates every entity with its distance from at and sorts ascending.
// Entities without coordinates always sort after every entity with a
// distance, regardless of magnitude. The sort is stable: equal distances
// keep their original relative order.
func Rank[T Positioned](items []T, at Point) []Ranked[T] {
	ranked := make([]Ranked[T], len(items))
	for i, item := range items {
		ranked[i] = Ranked[T]{Item: item}
		if lat, lng, ok := item.Position(); ok {
			d := DistanceKm(at.Lat, at.Lng, lat, lng)
			ranked[i].DistanceKm = &d
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].DistanceKm, ranked[j].DistanceKm
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a < *b
	})

	return ranked
}

// Unranked wraps entities without computing distances, preserving order.
// Used when the visitor's position could not be resolved.
func Unranked[T Positioned](items []T) []Ranked[T] {
	ranked := make([]Ranked[T], len(items))
	for i, item := range items {
		ranked[i] = Ranked[T]{Item: item}
	}
	return ranked
}
