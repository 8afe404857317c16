package handler

import (
	"regexp"

	"github.com/fortmig/fortscan/pkg/apierr"
	"github.com/fortmig/fortscan/pkg/models"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,61}[a-z0-9]$`)

func validateSlug(slug string) *apierr.Error {
	if slug == "" {
		return apierr.SlugRequired()
	}
	if !slugRegex.MatchString(slug) {
		return apierr.SlugInvalid()
	}
	return nil
}

func validateName(name string) *apierr.Error {
	if name == "" {
		return apierr.NameRequired()
	}
	if len(name) > 255 {
		return apierr.NameTooLong()
	}
	return nil
}

// validateClassification checks an optional classification filter. Empty
// means no filter and is allowed.
func validateClassification(c string) *apierr.Error {
	if c == "" {
		return nil
	}
	if !models.Classification(c).Valid() {
		return apierr.InvalidClassification()
	}
	return nil
}
