package countries

import (
	"sort"
	"strings"

	domaincountries "country-directory-service/internal/domain/countries"
)

// Sort keys accepted by Criteria.
const (
	SortName       = "name"
	SortPopulation = "population"
	SortArea       = "area"
)

// Criteria narrows and orders the country list.
type Criteria struct {
	// Search matches a case-insensitive substring of the name.
	Search string
	// Region matches exactly, ignoring case. Empty means all regions.
	Region string
	// Sort is one of SortName, SortPopulation or SortArea. Numeric sorts are descending.
	Sort string
}

// ParseSort validates a sort key. Empty selects SortName.
func ParseSort(raw string) (string, bool) {
	switch key := strings.ToLower(strings.TrimSpace(raw)); key {
	case "", SortName:
		return SortName, true
	case SortPopulation, SortArea:
		return key, true
	default:
		return "", false
	}
}

// Filter applies c to records. The input must already be in name order; the
// result is a new slice.
func Filter(records []domaincountries.Country, c Criteria) []domaincountries.Country {
	search := strings.ToLower(strings.TrimSpace(c.Search))
	region := strings.TrimSpace(c.Region)

	out := make([]domaincountries.Country, 0, len(records))
	for _, rec := range records {
		if search != "" && !strings.Contains(strings.ToLower(rec.Name), search) {
			continue
		}
		if region != "" && !strings.EqualFold(rec.Region, region) {
			continue
		}
		out = append(out, rec)
	}

	sortKey, _ := ParseSort(c.Sort)
	switch sortKey {
	case SortPopulation:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Population > out[j].Population })
	case SortArea:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Area > out[j].Area })
	}
	return out
}

// DistinctRegions returns the non-empty regions of records, sorted.
func DistinctRegions(records []domaincountries.Country) []string {
	seen := make(map[string]struct{})
	regions := make([]string, 0)
	for _, rec := range records {
		if rec.Region == "" {
			continue
		}
		if _, ok := seen[rec.Region]; ok {
			continue
		}
		seen[rec.Region] = struct{}{}
		regions = append(regions, rec.Region)
	}
	sort.Strings(regions)
	return regions
}
