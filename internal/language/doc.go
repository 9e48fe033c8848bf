// Package language provides unified language code normalization and mapping.
//
// All language conversions (ISO 639-1, ISO 639-2 terminology and
// bibliographic forms, English display names, tag extraction) are consolidated
// here so the resolver, policy builder, and classifier agree on one canonical
// form. Codes missing from the curated table fall back to golang.org/x/text.
package language
