package config

import (
	"sort"
	"strings"

	"github.com/theirongolddev/lifeline/internal/model"
)

// Resource is a place a household can turn to for help.
type Resource struct {
	Name        string `toml:"name"`
	Contact     string `toml:"contact"`
	Helps       string `toml:"helps"`
	MinSeverity string `toml:"min_severity"` // MODERATE, SEVERE or CRITICAL
}

// ResourceOverrides lets users list local programs alongside the defaults.
type ResourceOverrides struct {
	Extra       []Resource `toml:"extra,omitempty"`
	HideDefault bool       `toml:"hide_default,omitempty"`
}

// DefaultResources are national programs, most urgent first.
var DefaultResources = []Resource{
	{Name: "211", Contact: "dial 211 or visit 211.org", Helps: "emergency rent, utility and food assistance", MinSeverity: string(model.TriageCritical)},
	{Name: "LIHEAP", Contact: "acf.hhs.gov/ocs/liheap", Helps: "heating and cooling bills, shutoff prevention", MinSeverity: string(model.TriageSevere)},
	{Name: "Local food bank", Contact: "feedingamerica.org/find-your-local-foodbank", Helps: "groceries so cash can go to bills", MinSeverity: string(model.TriageSevere)},
	{Name: "Nonprofit credit counseling", Contact: "nfcc.org", Helps: "debt management plans and creditor negotiation", MinSeverity: string(model.TriageModerate)},
}

var severityRank = map[model.TriageSeverity]int{
	model.TriageModerate: 0,
	model.TriageSevere:   1,
	model.TriageCritical: 2,
}

func rankOf(s string) int {
	if r, ok := severityRank[model.TriageSeverity(strings.ToUpper(strings.TrimSpace(s)))]; ok {
		return r
	}
	return 0
}

// ResourcesFor returns every resource suited to sev, most urgent first.
// User entries come before defaults of the same urgency.
func ResourcesFor(sev model.TriageSeverity, overrides ResourceOverrides) []Resource {
	level := rankOf(string(sev))

	var all []Resource
	all = append(all, overrides.Extra...)
	if !overrides.HideDefault {
		all = append(all, DefaultResources...)
	}

	var out []Resource
	for _, r := range all {
		if rankOf(r.MinSeverity) <= level {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return rankOf(out[i].MinSeverity) > rankOf(out[j].MinSeverity)
	})
	return out
}
