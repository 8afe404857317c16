package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseValid(t *testing.T) {
	m, err := Parse([]byte(`{"inScopeModules": ["rdinp", "Pot", "DEBYE"]}`))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"RDINP", "POT", "DEBYE"}
	if !reflect.DeepEqual(m.InScopeModules, want) {
		t.Errorf("expected %v, got %v", want, m.InScopeModules)
	}
}

func TestParseEmptyModuleList(t *testing.T) {
	for _, doc := range []string{`{}`, `{"inScopeModules": []}`, `not json`} {
		_, err := Parse([]byte(doc))
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("Parse(%q): expected ErrInvalid, got %v", doc, err)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for missing file, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	doc := `{"inScopeModules": ["pot"], "moduleDirs": {"pot": ["pot", "potlib"]}, "displayNames": {"pot": "potential"}}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.DirsFor("POT"); !reflect.DeepEqual(got, []string{"POT", "POTLIB"}) {
		t.Errorf("expected override dirs, got %v", got)
	}
	if got := m.DisplayName("POT"); got != "potential" {
		t.Errorf("expected display override, got %q", got)
	}
}

func TestDirToModulesMultiLabel(t *testing.T) {
	m, err := Parse([]byte(`{"inScopeModules": ["DEBYE", "SELF"], "moduleDirs": {"SELF": ["SELF", "FF2X"]}}`))
	if err != nil {
		t.Fatal(err)
	}
	dirs := m.DirToModules()
	// FF2X belongs to DEBYE by default and to SELF via the override: a
	// directory may legitimately map to more than one module.
	ff2x := dirs["FF2X"]
	if !ff2x["DEBYE"] || !ff2x["SELF"] {
		t.Errorf("expected FF2X to map to both DEBYE and SELF, got %v", ff2x)
	}
}

func TestDefaultsFallBackToModuleName(t *testing.T) {
	m, err := Parse([]byte(`{"inScopeModules": ["NEWMOD"]}`))
	if err != nil {
		t.Fatal(err)
	}
	if got := m.DirsFor("NEWMOD"); !reflect.DeepEqual(got, []string{"NEWMOD"}) {
		t.Errorf("expected [NEWMOD], got %v", got)
	}
	if got := m.DisplayName("NEWMOD"); got != "newmod" {
		t.Errorf("expected newmod, got %q", got)
	}
}
