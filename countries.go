// Package countries provides offline lookups over a bundled dataset of
// country reference data: names, ISO codes, dial codes, timezones, capitals,
// regions and centroid coordinates.
//
// Queries never panic for expected conditions. Every query returns a Result
// whose Success flag must be checked before reading Countries:
//
//	r := countries.GetByAlpha2("IN")
//	if !r.Success {
//	    log.Fatal(r.ErrorMessage)
//	}
//	fmt.Println(r.Countries[0]) // 🇮🇳 India (+91, UTC+05:30)
//
// The dataset is loaded on first use and indexed once; afterwards all state is
// read-only and safe for concurrent use.
package countries

import "sync"

// defaultProvider is the shared Provider behind the package-level functions.
var defaultProvider = sync.OnceValue(func() *Provider {
	return NewProvider()
})

// Default returns the shared Provider over the embedded dataset.
func Default() *Provider {
	return defaultProvider()
}

// GetAll returns every country in the embedded dataset.
func GetAll() Result { return Default().GetAll() }

// GetByAlpha2 looks up a country by ISO alpha-2 code in the embedded dataset.
func GetByAlpha2(code string) Result { return Default().GetByAlpha2(code) }

// GetByAlpha3 looks up a country by ISO alpha-3 code in the embedded dataset.
func GetByAlpha3(code string) Result { return Default().GetByAlpha3(code) }

// GetByDialCode returns the countries sharing a dial code in the embedded dataset.
func GetByDialCode(dialCode string) Result { return Default().GetByDialCode(dialCode) }

// GetByRegion returns the countries of a region in the embedded dataset.
func GetByRegion(region string) Result { return Default().GetByRegion(region) }

// SearchByName searches country names in the embedded dataset.
func SearchByName(partial string) Result { return Default().SearchByName(partial) }

// SearchByCapital searches capitals in the embedded dataset.
func SearchByCapital(partial string) Result { return Default().SearchByCapital(partial) }

// SearchByDescription searches descriptions in the embedded dataset.
func SearchByDescription(partial string) Result { return Default().SearchByDescription(partial) }

// Nearest returns the country with the closest centroid in the embedded dataset.
func Nearest(lat, lng float64) Result { return Default().Nearest(lat, lng) }

// SearchByGeohash searches centroid geohashes in the embedded dataset.
func SearchByGeohash(prefix string) Result { return Default().SearchByGeohash(prefix) }

// SuggestByName returns near-miss name matches in the embedded dataset.
func SuggestByName(name string, maxDist int) Result { return Default().SuggestByName(name, maxDist) }
