package handler

import (
	"net/url"
	"reflect"
	"testing"

	"github.com/obratrack/obratrack/internal/analytics"
)

func TestParseFacets(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  analytics.Facets
	}{
		{"no params", "", analytics.Facets{}},
		{"years", "years=2024,2025", analytics.Facets{Years: []int{2024, 2025}}},
		{"statuses", "statuses=PLANNED,IN_PROGRESS", analytics.Facets{Statuses: []string{"PLANNED", "IN_PROGRESS"}}},
		{"locations with spaces", "locations=Lima,%20Cusco", analytics.Facets{Locations: []string{"Lima", "Cusco"}}},
		{"project ids", "projects=1,2,3", analytics.Facets{ProjectIDs: []int64{1, 2, 3}}},
		{"single project id", "projectId=42", analytics.Facets{ProjectID: 42}},
		{"bad numbers skipped", "years=2024,banana&projects=x,7", analytics.Facets{Years: []int{2024}, ProjectIDs: []int64{7}}},
		{"empty segments dropped", "locations=,,Lima,", analytics.Facets{Locations: []string{"Lima"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("bad query fixture: %v", err)
			}
			got := parseFacets(values)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFacets(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
		})
	}
}

func TestSplitCSV(t *testing.T) {
	if got := splitCSV(""); got != nil {
		t.Errorf("splitCSV(\"\") = %v, want nil", got)
	}
	got := splitCSV(" a , b ,, c")
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitCSV = %v, want %v", got, want)
	}
}
