package parser

// Parser extracts symbol definitions and references from one legacy source file.
type Parser interface {
	// Parse processes a single file and returns its extracted symbol sets.
	// It must be a pure function of the file content: unrecognized text yields
	// no symbols and never an error.
	Parse(input FileInput) (*Extraction, error)

	// Language returns the legacy dialect this parser handles.
	Language() string
}

// FileInput represents a file to be parsed. Content is fully materialized
// before parsing begins.
type FileInput struct {
	Path    string
	Dir     string // upper-cased name of the containing directory
	Content []byte
}

// Extraction contains the four symbol sets lifted from a file. Names are
// lower-cased, deduplicated, and sorted so downstream stages iterate
// deterministically.
type Extraction struct {
	DefinedModules  []string // module definitions
	DefinedRoutines []string // subroutine and function definitions
	Uses            []string // referenced module names (use statements)
	Calls           []string // invoked routine names (call statements)
}

// FileResult pairs an extraction with its file identity for the resolve stage.
type FileResult struct {
	Path       string
	Dir        string
	Language   string
	Extraction Extraction
}
