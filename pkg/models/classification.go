package models

// Classification is the migration-scope verdict for a scanned source file.
type Classification string

const (
	// ClassificationOwned marks files living in a directory that is directly
	// mapped to an in-scope migration module.
	ClassificationOwned Classification = "owned"
	// ClassificationSupportDependency marks files that are not owned but are
	// reachable through resolved dependency edges from at least one owned file.
	ClassificationSupportDependency Classification = "support_dependency"
	// ClassificationOutOfScope marks files with no origin labels after
	// propagation reaches fixpoint.
	ClassificationOutOfScope Classification = "out_of_scope"
)

// Valid reports whether c is one of the known classifications.
func (c Classification) Valid() bool {
	switch c {
	case ClassificationOwned, ClassificationSupportDependency, ClassificationOutOfScope:
		return true
	}
	return false
}
