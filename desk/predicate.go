package desk

import (
	"context"
	"strings"

	"flight_desk/model"
)

// Predicate reports whether item matches query. query is already lower-cased.
type Predicate[T any] func(item T, query string) bool

func hasPrefix(field, query string) bool {
	return strings.HasPrefix(strings.ToLower(field), query)
}

func MatchPassenger(p model.Passenger, query string) bool {
	return hasPrefix(p.Name, query)
}

func MatchAirplane(a model.Airplane, query string) bool {
	return hasPrefix(a.Airline, query) || hasPrefix(a.Description, query)
}

func MatchFlight(f model.Flight, query string) bool {
	return hasPrefix(f.Description, query) ||
		hasPrefix(f.CityOut, query) ||
		hasPrefix(f.CityFrom, query)
}

// Filter keeps the items accepted by match. An empty query passes the
// collection through unchanged.
func Filter[T any](items []T, query string, match Predicate[T]) []T {
	out, _ := filterContext(context.Background(), items, query, match)
	return out
}

func filterContext[T any](ctx context.Context, items []T, query string, match Predicate[T]) ([]T, error) {
	if query == "" {
		return items, nil
	}
	query = strings.ToLower(query)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if match(item, query) {
			out = append(out, item)
		}
	}
	return out, nil
}
