package utils

import (
	"github.com/gosimple/slug"
)

// Slugify derives the URL-safe identifier stored next to every
// human-readable name. Deterministic: the same name always yields the
// same slug, so uniqueness checks on slugs are meaningful.
func Slugify(name string) string {
	return slug.Make(name)
}
