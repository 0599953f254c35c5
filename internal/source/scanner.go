package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanDir walks dir and returns every snapshot file it can parse by
// extension, sorted by path. Hidden files and directories are skipped.
func ScanDir(dir string) ([]DiscoveredFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, nil
	}

	var files []DiscoveredFile

	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // intentionally skip unreadable entries
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") && path != dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		format, ferr := FormatFor(path)
		if ferr != nil {
			return nil
		}
		files = append(files, DiscoveredFile{
			Path:      path,
			Household: strings.TrimSuffix(name, filepath.Ext(name)),
			Format:    format,
		})
		return nil
	})

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, err
}

// Resolve expands path into snapshot files: a directory is scanned, a file
// is returned as-is.
func Resolve(path string) ([]DiscoveredFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return ScanDir(path)
	}
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	name := filepath.Base(path)
	return []DiscoveredFile{{
		Path:      path,
		Household: strings.TrimSuffix(name, filepath.Ext(name)),
		Format:    format,
	}}, nil
}
