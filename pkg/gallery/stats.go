package gallery

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// UnknownBucket collects artworks whose medium or year is missing or
// unusable.
const UnknownBucket = "Unknown"

// Bucket is one row of a frequency table.
type Bucket struct {
	Key   string
	Count int
}

// Table is an ordered frequency table. It marshals to a JSON object
// whose keys appear in slice order, which plain maps cannot guarantee.
type Table []Bucket

// MarshalJSON emits the table as an object with ordered keys.
func (t Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, b := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(b.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(b.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Stats is the artwork distribution aggregate.
type Stats struct {
	TotalArtworks int   `json:"total_artworks"`
	ByMedium      Table `json:"by_medium"`
	ByYear        Table `json:"by_year"`
}

// ComputeStats builds frequency tables over the full collection:
// count by trimmed medium (blank/missing to "Unknown") and count by
// normalized integer year (non-numeric/missing to "Unknown"). The
// medium table is sorted ascending by key, the year table descending.
func ComputeStats(all []Artwork) Stats {
	mediums := make(map[string]int)
	years := make(map[string]int)

	for _, a := range all {
		m := strings.TrimSpace(a.Medium)
		if m == "" {
			m = UnknownBucket
		}
		mediums[m]++

		if year, ok := a.Year(); ok {
			years[strconv.Itoa(year)]++
		} else {
			years[UnknownBucket]++
		}
	}

	return Stats{
		TotalArtworks: len(all),
		ByMedium:      sortedTable(mediums, false),
		ByYear:        sortedTable(years, true),
	}
}

func sortedTable(counts map[string]int, descending bool) Table {
	table := make(Table, 0, len(counts))
	for key, count := range counts {
		table = append(table, Bucket{Key: key, Count: count})
	}
	sort.Slice(table, func(i, j int) bool {
		if descending {
			return table[i].Key > table[j].Key
		}
		return table[i].Key < table[j].Key
	})
	return table
}
