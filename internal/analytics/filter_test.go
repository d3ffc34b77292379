package analytics

import (
	"testing"

	"github.com/obratrack/obratrack/internal/models"
)

func filterFixture() []models.Project {
	return []models.Project{
		newProject(1, "School", "Lima", "Ana", models.StatusInProgress, 1000, dayPtr(2024, 1, 1), nil),
		newProject(2, "Bridge", "Cusco", "Luis", models.StatusPlanned, 2000, dayPtr(2025, 3, 1), nil),
		newProject(3, "Road", "Lima", "Eva", models.StatusCompleted, 3000, dayPtr(2025, 7, 1), nil),
		newProject(4, "Dam", "Puno", "Ana", models.StatusInProgress, 4000, nil, nil),
	}
}

func ids(projects []models.Project) []int64 {
	out := make([]int64, len(projects))
	for i, p := range projects {
		out[i] = p.ID
	}
	return out
}

func TestFacetsApply(t *testing.T) {
	tests := []struct {
		name   string
		facets Facets
		want   []int64
	}{
		{"empty facets select everything", Facets{}, []int64{1, 2, 3, 4}},
		{"single year", Facets{Years: []int{2025}}, []int64{2, 3}},
		{"years are alternatives", Facets{Years: []int{2024, 2025}}, []int64{1, 2, 3}},
		{"status", Facets{Statuses: []string{models.StatusInProgress}}, []int64{1, 4}},
		{"location", Facets{Locations: []string{"Lima"}}, []int64{1, 3}},
		{"project ids", Facets{ProjectIDs: []int64{2, 4}}, []int64{2, 4}},
		{"facets combine as a conjunction", Facets{Locations: []string{"Lima"}, Statuses: []string{models.StatusInProgress}}, []int64{1}},
		{"no match", Facets{Locations: []string{"Arequipa"}}, nil},
		{"single id overrides facets", Facets{ProjectID: 3, Locations: []string{"Arequipa"}}, []int64{3}},
		{"unknown single id selects nothing", Facets{ProjectID: 99}, nil},
	}

	projects := filterFixture()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(tt.facets.Apply(projects))
			if len(got) != len(tt.want) {
				t.Fatalf("selected %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("selected %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestFacetsApplyDoesNotMutate(t *testing.T) {
	projects := filterFixture()
	Facets{Locations: []string{"Lima"}}.Apply(projects)
	if len(projects) != 4 {
		t.Fatalf("input slice length changed to %d", len(projects))
	}
	for i, want := range []int64{1, 2, 3, 4} {
		if projects[i].ID != want {
			t.Fatalf("input order changed at %d", i)
		}
	}
}
