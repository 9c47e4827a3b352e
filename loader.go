package countries

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
)

//go:embed countries-data
var dataFS embed.FS

// DataFileSuffix identifies the dataset resource inside a data filesystem.
const DataFileSuffix = "countries.json"

// findDataFile returns the first file, in lexical walk order, whose path
// ends with DataFileSuffix (case-insensitive).
func findDataFile(fsys fs.FS) (string, error) {
	found := ""
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(toLower(path), DataFileSuffix) {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %w", ErrResourceNotFound, err)
	}
	if err != nil {
		return "", fmt.Errorf("%w: scanning data files: %w", ErrRead, err)
	}
	if found == "" {
		return "", fmt.Errorf("%w: no file matching %q", ErrResourceNotFound, DataFileSuffix)
	}
	return found, nil
}

// Load decodes the countries resource found in fsys. Records are returned in
// file order without validation; absent text fields are empty strings.
func Load(fsys fs.FS) ([]Country, error) {
	if fsys == nil {
		return nil, fmt.Errorf("%w: nil filesystem", ErrResourceNotFound)
	}
	path, err := findDataFile(fsys)
	if err != nil {
		return nil, err
	}

	fh, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", ErrRead, path, err)
	}
	defer fh.Close()

	b, err := io.ReadAll(fh)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrRead, path, err)
	}

	var countries []Country
	if err := json.Unmarshal(b, &countries); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %w", ErrDecode, path, err)
	}
	if countries == nil {
		countries = []Country{}
	}
	return countries, nil
}

// LoadEmbedded decodes the dataset bundled into the binary.
func LoadEmbedded() ([]Country, error) {
	return Load(dataFS)
}

// loadWithFallback tries primary first and falls back to the embedded data
// only when primary holds no dataset at all.
func loadWithFallback(primary fs.FS) ([]Country, error) {
	countries, err := Load(primary)
	if errors.Is(err, ErrResourceNotFound) {
		return LoadEmbedded()
	}
	return countries, err
}
