package countries

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/golang/geo/s2"
)

// ProviderConfig contains configuration options for a Provider.
type ProviderConfig struct {
	DataFS   fs.FS          // Dataset filesystem; takes precedence over DataDir
	DataDir  string         // Directory searched before the embedded dataset (default: "")
	Resolver OffsetResolver // Timezone resolver used for display (default: StandardOffset)
	Logger   *log.Logger    // Destination for warnings (default: log.Default())
}

// Option is a functional option for configuring a Provider.
type Option func(*ProviderConfig)

// WithDataFS loads the dataset from fsys instead of the embedded data.
func WithDataFS(fsys fs.FS) Option {
	return func(c *ProviderConfig) {
		c.DataFS = fsys
	}
}

// WithDataDir searches dir for countries.json before using the embedded data.
func WithDataDir(dir string) Option {
	return func(c *ProviderConfig) {
		c.DataDir = dir
	}
}

// WithOffsetResolver sets the timezone resolver used by Describe.
func WithOffsetResolver(r OffsetResolver) Option {
	return func(c *ProviderConfig) {
		c.Resolver = r
	}
}

// WithLogger sets the logger that receives load and index warnings.
func WithLogger(l *log.Logger) Option {
	return func(c *ProviderConfig) {
		c.Logger = l
	}
}

// defaultConfig returns the default configuration.
func defaultConfig() *ProviderConfig {
	return &ProviderConfig{
		Resolver: StandardOffset,
		Logger:   log.Default(),
	}
}

func (c *ProviderConfig) load() ([]Country, error) {
	switch {
	case c.DataFS != nil:
		return Load(c.DataFS)
	case c.DataDir != "":
		return loadWithFallback(os.DirFS(c.DataDir))
	default:
		return LoadEmbedded()
	}
}

// indexSet holds every structure derived from the loaded slice.
// Positions refer to the provider's countries slice.
type indexSet struct {
	alpha2    map[string]int      // upper-cased alpha2 → position
	alpha3    map[string]int      // upper-cased alpha3 → position
	region    map[string][]int    // lower-cased region → positions in load order
	dialCode  map[string][]int    // exact dial code → positions in load order
	geohashes []string            // centroid geohash per position
	cells     map[s2.CellID][]int // S2 cell → positions, for Nearest
}

// Provider answers country queries against a lazily loaded dataset.
// Safe for concurrent use; the dataset and indexes are built once and
// never change afterwards. Once published, reads take no lock.
type Provider struct {
	config *ProviderConfig

	mu        sync.Mutex                // serializes loading and index building
	countries atomic.Pointer[[]Country] // nil until a load succeeds
	idx       atomic.Pointer[indexSet]  // nil until the first indexed query
}

// NewProvider creates a Provider. Nothing is loaded until the first query.
//
//	p := NewProvider(WithDataDir("/etc/countries"))
//	r := p.GetByAlpha2("in")
//	if r.Success {
//	    fmt.Println(r.Countries[0])
//	}
func NewProvider(opts ...Option) *Provider {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Resolver == nil {
		cfg.Resolver = StandardOffset
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Provider{config: cfg}
}

// loadLocked returns the cached slice, loading it first if needed.
// A failed load leaves the cache empty so a later call can retry.
// p.mu must be held.
func (p *Provider) loadLocked() ([]Country, error) {
	if loaded := p.countries.Load(); loaded != nil {
		return *loaded, nil
	}
	countries, err := p.config.load()
	if err != nil {
		p.config.Logger.Printf("warning: loading countries: %v", err)
		return nil, err
	}
	p.countries.Store(&countries)
	return countries, nil
}

func (p *Provider) all() ([]Country, error) {
	if loaded := p.countries.Load(); loaded != nil {
		return *loaded, nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadLocked()
}

func (p *Provider) indexes() ([]Country, *indexSet, error) {
	if idx := p.idx.Load(); idx != nil {
		return *p.countries.Load(), idx, nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	countries, err := p.loadLocked()
	if err != nil {
		return nil, nil, err
	}
	idx := p.idx.Load()
	if idx == nil {
		idx = buildIndexes(countries, p.config.Logger)
		p.idx.Store(idx)
	}
	return countries, idx, nil
}

// Preload loads the dataset and builds all indexes now instead of on the
// first query.
func (p *Provider) Preload() error {
	_, _, err := p.indexes()
	return err
}

// buildIndexes groups countries by each key field. Blank keys are left out
// of that index only. Duplicate alpha codes keep the later record.
func buildIndexes(countries []Country, logger *log.Logger) *indexSet {
	idx := &indexSet{
		alpha2:   make(map[string]int, len(countries)),
		alpha3:   make(map[string]int, len(countries)),
		region:   make(map[string][]int),
		dialCode: make(map[string][]int),
	}

	addCode := func(index map[string]int, kind, code string, i int) {
		if isBlank(code) {
			return
		}
		key := toUpper(code)
		if prev, dup := index[key]; dup {
			logger.Printf("warning: duplicate %s code %q: %q replaces %q",
				kind, key, countries[i].Name, countries[prev].Name)
		}
		index[key] = i
	}

	for i, c := range countries {
		addCode(idx.alpha2, "alpha2", c.Alpha2, i)
		addCode(idx.alpha3, "alpha3", c.Alpha3, i)
		if !isBlank(c.Region) {
			key := toLower(c.Region)
			idx.region[key] = append(idx.region[key], i)
		}
		if !isBlank(c.DialCode) {
			idx.dialCode[c.DialCode] = append(idx.dialCode[c.DialCode], i)
		}
	}

	idx.geohashes = buildGeohashes(countries)
	idx.cells = buildCellIndex(countries)
	return idx
}

// pick deep-copies the countries at the given positions so callers can
// never modify the cached records.
func pick(countries []Country, positions []int) []Country {
	out := make([]Country, len(positions))
	for i, pos := range positions {
		out[i] = countries[pos].clone()
	}
	return out
}

func cloneAll(countries []Country) []Country {
	out := make([]Country, len(countries))
	for i, c := range countries {
		out[i] = c.clone()
	}
	return out
}

func loadFailure(err error) Result {
	return fail(fmt.Errorf("loading countries: %w", err))
}

func emptyInput(what string) Result {
	return fail(fmt.Errorf("%w: %s is empty", ErrInvalidArgument, what))
}

// GetAll returns every country in dataset order.
func (p *Provider) GetAll() Result {
	countries, err := p.all()
	if err != nil {
		return loadFailure(err)
	}
	return ok(cloneAll(countries))
}

func (p *Provider) getByCode(kind, code string, index func(*indexSet) map[string]int) Result {
	if isBlank(code) {
		return emptyInput(kind + " code")
	}
	countries, idx, err := p.indexes()
	if err != nil {
		return loadFailure(err)
	}
	pos, found := index(idx)[toUpper(code)]
	if !found {
		return fail(fmt.Errorf("%w: no country with %s code %q", ErrNotFound, kind, code))
	}
	return ok([]Country{countries[pos].clone()})
}

// GetByAlpha2 returns the country with the given two-letter code, ignoring case.
func (p *Provider) GetByAlpha2(code string) Result {
	return p.getByCode("alpha2", code, func(idx *indexSet) map[string]int { return idx.alpha2 })
}

// GetByAlpha3 returns the country with the given three-letter code, ignoring case.
func (p *Provider) GetByAlpha3(code string) Result {
	return p.getByCode("alpha3", code, func(idx *indexSet) map[string]int { return idx.alpha3 })
}

// GetByDialCode returns every country sharing the dial code, matched exactly.
func (p *Provider) GetByDialCode(dialCode string) Result {
	if isBlank(dialCode) {
		return emptyInput("dial code")
	}
	countries, idx, err := p.indexes()
	if err != nil {
		return loadFailure(err)
	}
	positions, found := idx.dialCode[dialCode]
	if !found {
		return fail(fmt.Errorf("%w: no country with dial code %q", ErrNotFound, dialCode))
	}
	return ok(pick(countries, positions))
}

// GetByRegion returns every country in the region, ignoring case.
func (p *Provider) GetByRegion(region string) Result {
	if isBlank(region) {
		return emptyInput("region")
	}
	countries, idx, err := p.indexes()
	if err != nil {
		return loadFailure(err)
	}
	positions, found := idx.region[toLower(region)]
	if !found {
		return fail(fmt.Errorf("%w: no countries in region %q", ErrNotFound, region))
	}
	return ok(pick(countries, positions))
}

// search scans the full slice for records whose field contains term,
// ignoring case. Zero matches is still a success.
func (p *Provider) search(term string, field func(Country) string) Result {
	if isBlank(term) {
		return emptyInput("search term")
	}
	countries, err := p.all()
	if err != nil {
		return loadFailure(err)
	}
	needle := toLower(term)
	matches := []Country{}
	for _, c := range countries {
		if strings.Contains(toLower(field(c)), needle) {
			matches = append(matches, c.clone())
		}
	}
	return ok(matches)
}

// SearchByName returns countries whose name contains partial, ignoring case.
func (p *Provider) SearchByName(partial string) Result {
	return p.search(partial, func(c Country) string { return c.Name })
}

// SearchByCapital returns countries whose capital contains partial, ignoring case.
func (p *Provider) SearchByCapital(partial string) Result {
	return p.search(partial, func(c Country) string { return c.Capital })
}

// SearchByDescription returns countries whose description contains partial,
// ignoring case.
func (p *Provider) SearchByDescription(partial string) Result {
	return p.search(partial, func(c Country) string { return c.Description })
}

// Describe renders a country the way Country.String does, using the
// provider's timezone resolver.
func (p *Provider) Describe(c Country) string {
	return c.Format(p.config.Resolver)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// toLower converts a string to lowercase using the standard library.
// Names and capitals may carry non-ASCII letters ("Côte d'Ivoire",
// "Asunción"), which byte-level ASCII folding would miss.
func toLower(s string) string {
	return strings.ToLower(s)
}

// toUpper converts a string to uppercase using the standard library.
// See toLower.
func toUpper(s string) string {
	return strings.ToUpper(s)
}
