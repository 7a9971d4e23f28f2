// Package kb loads the packing knowledge base from its CSV source.
package kb

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hyperengineering/packvec/internal/types"
)

// Columns that must be present in the CSV header. tags and climate are
// optional and default to empty lists when the column is absent.
var requiredColumns = []string{
	"item",
	"category",
	"destination_type",
	"travel_type",
	"season",
	"quantity",
	"reason",
	"importance",
}

// Load reads the knowledge base CSV at path and returns its items in row
// order. Multi-valued fields use two distinct in-field delimiters: season
// is comma-separated, tags and climate are semicolon-separated. Empty
// sub-fields are discarded.
func Load(path string) ([]types.KnowledgeItem, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("knowledge base not found: %s", path)
		}
		return nil, fmt.Errorf("opening knowledge base: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("knowledge base %s is empty", path)
		}
		return nil, fmt.Errorf("reading knowledge base header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("knowledge base %s missing required column %q", path, name)
		}
	}

	var items []types.KnowledgeItem
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading knowledge base row %d: %w", row, err)
		}

		field := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return record[idx]
		}

		quantity, err := strconv.Atoi(strings.TrimSpace(field("quantity")))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid quantity %q: %w", row, field("quantity"), err)
		}

		items = append(items, types.KnowledgeItem{
			Item:            field("item"),
			Category:        field("category"),
			DestinationType: field("destination_type"),
			TravelType:      field("travel_type"),
			Season:          splitList(field("season"), ","),
			Quantity:        quantity,
			Reason:          field("reason"),
			Importance:      field("importance"),
			Tags:            splitList(field("tags"), ";"),
			Climate:         splitList(field("climate"), ";"),
		})
	}

	return items, nil
}

// splitList splits a multi-valued field on sep, trims whitespace, and
// drops empty entries while preserving relative order.
func splitList(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
