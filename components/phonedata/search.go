package phonedata

import (
	"sort"
	"strings"

	"github.com/goliatone/go-phoneinput/pkg/intltel"
)

// Search filters countries by name, ISO2 code or dial code. Prefix matches
// sort before substring matches, then by name.
func Search(countries []intltel.CountryData, query string, limit int, opts Options) []intltel.CountryData {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode == EmptySearchTop {
			if len(countries) <= limit {
				return append([]intltel.CountryData{}, countries...)
			}
			return append([]intltel.CountryData{}, countries[:limit]...)
		}
		return nil
	}

	q := strings.ToLower(query)
	dial := strings.TrimPrefix(q, "+")
	matches := make([]matchedCountry, 0, 16)
	for _, country := range countries {
		name := strings.ToLower(country.Name)
		var prefix bool
		switch {
		case country.ISO2 == q, strings.HasPrefix(name, q):
			prefix = true
		case dial != "" && strings.HasPrefix(country.DialCode, dial) && isDigits(dial):
			prefix = true
		case strings.Contains(name, q):
		default:
			continue
		}
		matches = append(matches, matchedCountry{country: country, isPrefix: prefix})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].country.Name < matches[j].country.Name
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]intltel.CountryData, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.country)
	}
	return out
}

type matchedCountry struct {
	country  intltel.CountryData
	isPrefix bool
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
