package fortran

import (
	"regexp"
	"sort"
	"strings"

	"github.com/fortmig/fortscan/internal/parser"
)

// Suffixes lists the file extensions treated as Fortran source.
var Suffixes = []string{".f", ".f90", ".for", ".f95", ".f03", ".f08"}

// Line-anchored definition and reference patterns. Matching is lexical and
// line-at-a-time: continuation lines are not merged with their predecessor,
// which slightly under-reports symbols split across lines. That approximation
// is intentional; resolution downstream is conservative anyway.
var (
	moduleDefRe = regexp.MustCompile(`(?i)^\s*module\s+([a-z][a-z0-9_]*)\b`)

	subroutineDefRe = regexp.MustCompile(
		`(?i)^\s*(?:(?:recursive|pure|elemental|impure|module)\s+)*subroutine\s+([a-z][a-z0-9_]*)\b`)

	// Functions may carry a result type before the keyword, optionally with a
	// parenthesized precision, e.g. "real(kind=8) function f(x)".
	functionDefRe = regexp.MustCompile(
		`(?i)^\s*(?:(?:recursive|pure|elemental|impure|module)\s+)*` +
			`(?:(?:[a-z][a-z0-9_]*(?:\s*\([^)]+\))?)\s+)*` +
			`function\s+([a-z][a-z0-9_]*)\b`)

	useRe = regexp.MustCompile(
		`(?i)^\s*use\s*(?:,\s*(?:intrinsic|non_intrinsic)\s*)?(?:::\s*)?([a-z][a-z0-9_]*)\b`)

	callRe = regexp.MustCompile(`(?i)\bcall\s+([a-z][a-z0-9_]*)\b`)
)

// procedureKeywords are identifiers that follow "module" when the statement
// is a procedure form ("module procedure", "module subroutine", ...) rather
// than a module definition.
var procedureKeywords = map[string]bool{
	"procedure":  true,
	"subroutine": true,
	"function":   true,
}

// Parser extracts symbol definitions and references from Fortran source.
type Parser struct{}

func New() *Parser {
	return &Parser{}
}

func (p *Parser) Language() string {
	return "fortran"
}

// Parse scans the file line by line and collects the four symbol sets.
// It never fails: lines matching no pattern contribute nothing.
func (p *Parser) Parse(input parser.FileInput) (*parser.Extraction, error) {
	modules := make(map[string]bool)
	routines := make(map[string]bool)
	uses := make(map[string]bool)
	calls := make(map[string]bool)

	for _, raw := range strings.Split(string(input.Content), "\n") {
		line := strings.TrimSpace(stripComment(raw))
		if line == "" {
			continue
		}

		if m := moduleDefRe.FindStringSubmatch(line); m != nil {
			name := strings.ToLower(m[1])
			if !procedureKeywords[name] {
				modules[name] = true
			}
		}

		if m := subroutineDefRe.FindStringSubmatch(line); m != nil {
			routines[strings.ToLower(m[1])] = true
		}

		if m := functionDefRe.FindStringSubmatch(line); m != nil {
			routines[strings.ToLower(m[1])] = true
		}

		if m := useRe.FindStringSubmatch(line); m != nil {
			uses[strings.ToLower(m[1])] = true
		}

		for _, m := range callRe.FindAllStringSubmatch(line, -1) {
			calls[strings.ToLower(m[1])] = true
		}
	}

	return &parser.Extraction{
		DefinedModules:  sortedKeys(modules),
		DefinedRoutines: sortedKeys(routines),
		Uses:            sortedKeys(uses),
		Calls:           sortedKeys(calls),
	}, nil
}

// stripComment truncates a line at the first "!". Fortran fixed-form comment
// columns and "!" inside character literals are not distinguished; this
// mirrors the lexical contract of the extractor.
func stripComment(line string) string {
	if i := strings.IndexByte(line, '!'); i >= 0 {
		return line[:i]
	}
	return line
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
