package desk

import (
	"reflect"
	"testing"

	"flight_desk/model"
)

func TestFilterPassengers(t *testing.T) {
	all := []model.Passenger{ana, luis}

	tests := []struct {
		name  string
		query string
		want  []model.Passenger
	}{
		{"prefix only", "an", []model.Passenger{ana}},
		{"upper case query", "AN", []model.Passenger{ana}},
		{"empty query passes through", "", all},
		{"no match", "x", []model.Passenger{}},
		{"infix is not a match", "uis", []model.Passenger{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(all, tt.query, MatchPassenger)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Filter(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestFilterIsCaseInsensitive(t *testing.T) {
	all := []model.Passenger{{Name: "Ana"}}
	upper := Filter(all, "AN", MatchPassenger)
	lower := Filter(all, "an", MatchPassenger)
	if !reflect.DeepEqual(upper, lower) || len(lower) != 1 {
		t.Fatalf("upper %v, lower %v", upper, lower)
	}
}

func TestFilterResultIsSubset(t *testing.T) {
	all := []model.Flight{
		night,
		{DTO: model.DTO{ID: 8}, CityFrom: "Cali", CityOut: "Bogota", Description: "Morning"},
		{DTO: model.DTO{ID: 9}, CityFrom: "Medellin", CityOut: "Cartagena", Description: "Beach"},
	}
	ids := map[uint]bool{}
	for _, f := range all {
		ids[f.ID] = true
	}
	for _, q := range []string{"", "b", "bo", "c", "ca", "m", "med", "n", "zzz"} {
		for _, f := range Filter(all, q, MatchFlight) {
			if !ids[f.ID] {
				t.Fatalf("query %q produced flight %d outside the collection", q, f.ID)
			}
		}
	}
}

func TestMatchAirplane(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"avi", true},
		{"boe", true},
		{"787", false},
		{"latam", false},
	}
	for _, tt := range tests {
		if got := MatchAirplane(boeing, tt.query); got != tt.want {
			t.Errorf("MatchAirplane(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestMatchFlight(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"night", true},
		{"med", true},
		{"bog", true},
		{"shuttle", false},
	}
	for _, tt := range tests {
		if got := MatchFlight(night, tt.query); got != tt.want {
			t.Errorf("MatchFlight(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}
