package services

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/abrezinsky/mastersboard/internal/render"
)

// FilterRows keeps the rows whose key fuzzily matches query, ignoring case and
// accents ("aberg" finds "Åberg"). Order is preserved. An empty query
// returns rows unchanged.
func FilterRows(rows []render.Row, query string) []render.Row {
	query = strings.TrimSpace(query)
	if query == "" {
		return rows
	}

	out := make([]render.Row, 0, len(rows))
	for _, row := range rows {
		if fuzzy.MatchNormalizedFold(query, row.Key) {
			out = append(out, row)
		}
	}
	return out
}
