// Package codec converts between typed in-memory values and tagged text
// tokens suitable for plain-text configuration storage.
//
// A tagged token has the form "@<keyword> <payload>". The keyword selects a
// registered handler that parses the payload into a typed value; serializing
// the value back produces the same token. Because the tag is self-describing,
// JSON/TOML/YAML documents can carry paths, dates, datetimes, URLs and
// user-registered types without the storage layer knowing about them.
// Parsing and serializing recurse over nested maps and slices, so arbitrarily
// nested configuration trees get typed transparently.
//
// Strings that merely look like tokens (unknown keyword, or no space after
// the "@") pass through unchanged, as do all non-string scalars.
package codec
