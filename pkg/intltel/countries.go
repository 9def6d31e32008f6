package intltel

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

var (
	countriesOnce  sync.Once
	countriesList  []CountryData
	countriesIndex map[string]CountryData
)

func loadCountries() {
	countriesOnce.Do(func() {
		namer := display.Regions(language.English)
		regions := phonenumbers.GetSupportedRegions()

		countriesIndex = make(map[string]CountryData, len(regions))
		countriesList = make([]CountryData, 0, len(regions))
		for region := range regions {
			code := phonenumbers.GetCountryCodeForRegion(region)
			if code == 0 {
				continue
			}
			iso2 := NormalizeISO2(region)
			name := strings.ToUpper(iso2)
			if parsed, err := language.ParseRegion(region); err == nil {
				if n := strings.TrimSpace(namer.Name(parsed)); n != "" {
					name = n
				}
			}
			country := CountryData{
				Name:     name,
				ISO2:     iso2,
				DialCode: strconv.Itoa(code),
			}
			countriesIndex[iso2] = country
			countriesList = append(countriesList, country)
		}
		sort.Slice(countriesList, func(i, j int) bool {
			if countriesList[i].Name != countriesList[j].Name {
				return countriesList[i].Name < countriesList[j].Name
			}
			return countriesList[i].ISO2 < countriesList[j].ISO2
		})
	})
}

// Countries returns every supported country sorted by English name.
func Countries() []CountryData {
	loadCountries()
	return append([]CountryData(nil), countriesList...)
}

// Lookup returns the country for an ISO2 code.
func Lookup(iso2 string) (CountryData, bool) {
	loadCountries()
	country, ok := countriesIndex[NormalizeISO2(iso2)]
	return country, ok
}

// OrderedCountries returns Countries with the codes in order moved to the
// front, in the given order. Unknown and repeated codes are ignored.
func OrderedCountries(order []string) []CountryData {
	all := Countries()
	if len(order) == 0 {
		return all
	}

	seen := make(map[string]struct{}, len(order))
	out := make([]CountryData, 0, len(all))
	for _, code := range order {
		code = NormalizeISO2(code)
		if _, dup := seen[code]; dup {
			continue
		}
		country, ok := Lookup(code)
		if !ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, country)
	}
	for _, country := range all {
		if _, first := seen[country.ISO2]; first {
			continue
		}
		out = append(out, country)
	}
	return out
}
