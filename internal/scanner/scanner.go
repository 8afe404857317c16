package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fortmig/fortscan/internal/parser"
	"github.com/fortmig/fortscan/internal/parser/fortran"
)

// ErrRootNotFound marks a scan root that does not exist or is not a directory.
var ErrRootNotFound = errors.New("scan root not found")

// ErrNoSourceFiles marks a scan root containing no matching source files.
var ErrNoSourceFiles = errors.New("no matching source files under scan root")

var fortranSuffixes = func() map[string]bool {
	m := make(map[string]bool, len(fortran.Suffixes))
	for _, s := range fortran.Suffixes {
		m[s] = true
	}
	return m
}()

// Scan walks root, reads every Fortran source file fully into memory, and
// returns the inputs sorted by path. Paths are slash-separated and relative
// to root; Dir is the upper-cased name of the file's containing directory.
func Scan(root string) ([]parser.FileInput, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
	}

	var inputs []parser.FileInput
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !fortranSuffixes[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relativize %s: %w", path, err)
		}

		inputs = append(inputs, parser.FileInput{
			Path:    filepath.ToSlash(rel),
			Dir:     strings.ToUpper(filepath.Base(filepath.Dir(path))),
			Content: content,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSourceFiles, root)
	}

	sort.Slice(inputs, func(i, j int) bool { return inputs[i].Path < inputs[j].Path })
	return inputs, nil
}
