package analytics

import "github.com/obratrack/obratrack/internal/models"

// Facets are the optional filter dimensions of a dashboard request. An empty
// list imposes no constraint; values within one facet are alternatives, the
// facets themselves combine as a conjunction. A non-zero ProjectID overrides
// every other facet and selects exactly that project.
type Facets struct {
	Years      []int
	Statuses   []string
	Locations  []string
	ProjectIDs []int64
	ProjectID  int64
}

// Apply selects the subset of projects matching the facets. The returned slice
// shares the input's backing records; nothing is copied or mutated.
func (f Facets) Apply(projects []models.Project) []models.Project {
	if f.ProjectID != 0 {
		for i := range projects {
			if projects[i].ID == f.ProjectID {
				return projects[i : i+1]
			}
		}
		return nil
	}

	var out []models.Project
	for _, p := range projects {
		if !containsInt(f.Years, p.StartYear()) {
			continue
		}
		if !containsString(f.Statuses, p.Status) {
			continue
		}
		if !containsString(f.Locations, p.Location) {
			continue
		}
		if !containsInt64(f.ProjectIDs, p.ID) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// containsInt and friends treat an empty list as "match everything".

func containsInt(list []int, v int) bool {
	if len(list) == 0 {
		return true
	}
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func containsInt64(list []int64, v int64) bool {
	if len(list) == 0 {
		return true
	}
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func containsString(list []string, v string) bool {
	if len(list) == 0 {
		return true
	}
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
