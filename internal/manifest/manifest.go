package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrInvalid marks a missing or malformed scan manifest. The analysis aborts
// before any scanning when the manifest cannot supply a non-empty in-scope
// module list.
var ErrInvalid = errors.New("invalid scan manifest")

// defaultModuleDirs maps each migration module to the source-tree directory
// names it owns. A module may own more than one directory.
var defaultModuleDirs = map[string][]string{
	"RDINP":        {"RDINP"},
	"POT":          {"POT"},
	"PATH":         {"PATH"},
	"FMS":          {"FMS"},
	"XSPH":         {"XSPH"},
	"BAND":         {"BAND"},
	"LDOS":         {"LDOS"},
	"RIXS":         {"RIXS"},
	"CRPA":         {"CRPA"},
	"COMPTON":      {"COMPTON"},
	"DEBYE":        {"DEBYE", "FF2X"},
	"DMDW":         {"DMDW"},
	"SCREEN":       {"SCREEN"},
	"SELF":         {"SELF", "SFCONV"},
	"EELS":         {"EELS"},
	"FULLSPECTRUM": {"FULLSPECTRUM"},
}

// defaultDisplayNames maps module identifiers to their external display names.
var defaultDisplayNames = map[string]string{
	"RDINP":        "rdinp",
	"POT":          "pot",
	"PATH":         "path",
	"FMS":          "fms",
	"XSPH":         "xsph",
	"BAND":         "band",
	"LDOS":         "ldos",
	"RIXS":         "rixs",
	"CRPA":         "crpa",
	"COMPTON":      "compton",
	"DEBYE":        "debye",
	"DMDW":         "dmdw",
	"SCREEN":       "screen",
	"SELF":         "self",
	"EELS":         "eels",
	"FULLSPECTRUM": "fullspectrum",
}

// Manifest supplies the in-scope module list and the module-to-directory and
// module-to-display-name mappings that seed the analysis.
type Manifest struct {
	InScopeModules []string            `json:"inScopeModules"`
	ModuleDirs     map[string][]string `json:"moduleDirs,omitempty"`
	DisplayNames   map[string]string   `json:"displayNames,omitempty"`
}

// Load reads and validates a manifest document. Module identifiers are
// upper-cased; directory and display-name mappings fall back to the built-in
// tables for modules the document does not override.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrInvalid, path, err)
	}
	return Parse(data)
}

// Parse decodes and validates raw manifest bytes.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if len(m.InScopeModules) == 0 {
		return nil, fmt.Errorf("%w: missing a non-empty inScopeModules array", ErrInvalid)
	}

	for i, mod := range m.InScopeModules {
		m.InScopeModules[i] = strings.ToUpper(mod)
	}

	dirs := make(map[string][]string, len(m.ModuleDirs))
	for mod, dd := range m.ModuleDirs {
		upper := make([]string, len(dd))
		for i, d := range dd {
			upper[i] = strings.ToUpper(d)
		}
		dirs[strings.ToUpper(mod)] = upper
	}
	m.ModuleDirs = dirs

	names := make(map[string]string, len(m.DisplayNames))
	for mod, n := range m.DisplayNames {
		names[strings.ToUpper(mod)] = n
	}
	m.DisplayNames = names

	return &m, nil
}

// DirsFor returns the directory names owned by a module: the manifest
// override if present, then the built-in table, then the module name itself.
func (m *Manifest) DirsFor(module string) []string {
	module = strings.ToUpper(module)
	if dd, ok := m.ModuleDirs[module]; ok {
		return dd
	}
	if dd, ok := defaultModuleDirs[module]; ok {
		return dd
	}
	return []string{module}
}

// DirToModules inverts the module-to-directory mapping for the in-scope
// modules. A directory may map to more than one module.
func (m *Manifest) DirToModules() map[string]map[string]bool {
	out := make(map[string]map[string]bool)
	for _, module := range m.InScopeModules {
		for _, dir := range m.DirsFor(module) {
			dir = strings.ToUpper(dir)
			if out[dir] == nil {
				out[dir] = make(map[string]bool)
			}
			out[dir][module] = true
		}
	}
	return out
}

// DisplayName returns the external display name for a module identifier.
func (m *Manifest) DisplayName(module string) string {
	module = strings.ToUpper(module)
	if n, ok := m.DisplayNames[module]; ok {
		return n
	}
	if n, ok := defaultDisplayNames[module]; ok {
		return n
	}
	return strings.ToLower(module)
}
