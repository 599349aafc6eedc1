package restcountries

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"country-directory-service/internal/domain/countries"
)

// Assemble normalizes every raw record and returns a de-duplicated list in
// ascending name order. One bad record fails the whole collection.
func Assemble(raws []json.RawMessage) ([]countries.Country, error) {
	records := make([]countries.Country, 0, len(raws))
	for i, raw := range raws {
		c, err := Normalize(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, c)
	}
	return AssembleRecords(records), nil
}

// AssembleRecords de-duplicates by case-insensitive name, keeping the last
// occurrence, and sorts with locale-aware collation. It is idempotent.
func AssembleRecords(records []countries.Country) []countries.Country {
	index := make(map[string]int, len(records))
	unique := make([]countries.Country, 0, len(records))
	for _, c := range records {
		key := strings.ToLower(c.Name)
		if pos, ok := index[key]; ok {
			unique[pos] = c
			continue
		}
		index[key] = len(unique)
		unique = append(unique, c)
	}

	SortByName(unique)
	return unique
}

// SortByName orders records in place by collated name; byte order breaks ties.
func SortByName(records []countries.Country) {
	// Collators keep scratch buffers, so each sort gets its own.
	col := collate.New(language.Und, collate.Loose)
	sort.SliceStable(records, func(i, j int) bool {
		if cmp := col.CompareString(records[i].Name, records[j].Name); cmp != 0 {
			return cmp < 0
		}
		return records[i].Name < records[j].Name
	})
}
