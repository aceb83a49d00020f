package baskets

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileStore is the lookup contract with the external download store: the
// newest stored issuer file for a ticker, or fs.ErrNotExist.
type FileStore interface {
	Latest(ticker string) (string, error)
}

// Store is a FileStore over a flat directory of downloaded issuer files. A
// file belongs to a ticker when its name is `<TICKER>_<anything>`; downloads
// accumulate and only the newest one is ever read back.
type Store struct {
	dir string
}

// NewStore returns a store over dir. The directory need not exist yet; every
// lookup against a missing directory reports fs.ErrNotExist.
func NewStore(dir string) Store { return Store{dir: dir} }

// Dir returns the store directory.
func (s Store) Dir() string { return s.dir }

// Latest returns the path of the newest file stored for ticker, by
// modification time with the file name as tie-break. It returns an error
// wrapping fs.ErrNotExist when no file matches.
func (s Store) Latest(ticker string) (string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "", fmt.Errorf("cannot list store %q: %w", s.dir, err)
	}
	var best string
	var bestInfo fs.FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), ticker+"_") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return "", err
		}
		if bestInfo == nil ||
			info.ModTime().After(bestInfo.ModTime()) ||
			(info.ModTime().Equal(bestInfo.ModTime()) && entry.Name() > best) {
			best = entry.Name()
			bestInfo = info
		}
	}
	if best == "" {
		return "", fmt.Errorf("no stored file for %q: %w", ticker, fs.ErrNotExist)
	}
	return filepath.Join(s.dir, best), nil
}
