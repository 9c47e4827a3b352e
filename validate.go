package countries

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// minCountryCount is the smallest dataset ValidateData accepts.
const minCountryCount = 100

// validationCode defines a known code lookup for functional validation.
type validationCode struct {
	alpha2   string
	alpha3   string
	wantName string
}

// validationCoord defines centroid-adjacent coordinates for Nearest validation.
type validationCoord struct {
	lat, lng float64
	wantName string
}

// knownCodes are used to validate code lookups work in both alphabets.
var knownCodes = []validationCode{
	{"IN", "IND", "India"},
	{"US", "USA", "United States"},
	{"JP", "JPN", "Japan"},
	{"DE", "DEU", "Germany"},
	{"BR", "BRA", "Brazil"},
}

// knownCoords sit within a few kilometres of dataset centroids.
var knownCoords = []validationCoord{
	{20.6, 78.96, "India"},
	{-25.27, 133.78, "Australia"},
	{37.1, -95.7, "United States"},
	{-14.2, -51.9, "Brazil"},
}

// knownDialCode is shared by more than one country and checks grouping order.
var knownDialCode = struct {
	code      string
	wantNames []string
}{"+1", []string{"Canada", "United States"}}

// ValidateData loads a dataset through a fresh Provider and performs
// integrity and functional checks, reporting progress to w.
// All integrity problems are reported together.
func ValidateData(w io.Writer, opts ...Option) error {
	p := NewProvider(opts...)
	if err := p.Preload(); err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	all := p.GetAll().Countries

	if len(all) < minCountryCount {
		return fmt.Errorf("country count too low: got %d, want >= %d", len(all), minCountryCount)
	}
	fmt.Fprintf(w, "      Country count: %d (OK)\n", len(all))

	if err := checkIntegrity(all); err != nil {
		return err
	}
	fmt.Fprintf(w, "      Integrity: OK\n")

	fmt.Fprintf(w, "      Code lookups: ")
	for _, tc := range knownCodes {
		for _, r := range []struct {
			code   string
			result Result
		}{
			{tc.alpha2, p.GetByAlpha2(tc.alpha2)},
			{tc.alpha3, p.GetByAlpha3(tc.alpha3)},
		} {
			c, found := r.result.First()
			if !found {
				return fmt.Errorf("lookup(%q): %s", r.code, r.result.ErrorMessage)
			}
			if c.Name != tc.wantName {
				return fmt.Errorf("lookup(%q) = %q, want %q", r.code, c.Name, tc.wantName)
			}
		}
	}
	fmt.Fprintf(w, "%d countries OK\n", len(knownCodes))

	fmt.Fprintf(w, "      Dial code grouping: ")
	r := p.GetByDialCode(knownDialCode.code)
	if !r.Success {
		return fmt.Errorf("GetByDialCode(%q): %s", knownDialCode.code, r.ErrorMessage)
	}
	var got []string
	for _, c := range r.Countries {
		got = append(got, c.Name)
	}
	if strings.Join(got, ",") != strings.Join(knownDialCode.wantNames, ",") {
		return fmt.Errorf("GetByDialCode(%q) = %v, want %v", knownDialCode.code, got, knownDialCode.wantNames)
	}
	fmt.Fprintf(w, "%s OK\n", knownDialCode.code)

	fmt.Fprintf(w, "      Nearest: ")
	for _, tc := range knownCoords {
		c, found := p.Nearest(tc.lat, tc.lng).First()
		if !found || c.Name != tc.wantName {
			return fmt.Errorf("Nearest(%v, %v) = %q, want %q", tc.lat, tc.lng, c.Name, tc.wantName)
		}
	}
	fmt.Fprintf(w, "%d coords OK\n", len(knownCoords))

	return nil
}

// checkIntegrity reports blank names, out-of-range centroids and duplicate
// alpha codes. Duplicates load fine but shadow each other in the code indexes.
func checkIntegrity(countries []Country) error {
	var errs []error
	alpha2 := make(map[string]string, len(countries))
	alpha3 := make(map[string]string, len(countries))

	checkCode := func(seen map[string]string, kind, code, name string) {
		if isBlank(code) {
			return
		}
		key := toUpper(code)
		if prev, dup := seen[key]; dup {
			errs = append(errs, fmt.Errorf("duplicate %s code %q: %q and %q", kind, key, prev, name))
			return
		}
		seen[key] = name
	}

	for i, c := range countries {
		if isBlank(c.Name) {
			errs = append(errs, fmt.Errorf("record %d: blank name", i))
		}
		if c.Latitude < -90 || c.Latitude > 90 || c.Longitude < -180 || c.Longitude > 180 {
			errs = append(errs, fmt.Errorf("record %d (%s): centroid (%v, %v) out of range", i, c.Name, c.Latitude, c.Longitude))
		}
		checkCode(alpha2, "alpha2", c.Alpha2, c.Name)
		checkCode(alpha3, "alpha3", c.Alpha3, c.Name)
	}
	return errors.Join(errs...)
}
