// Package domain implements the domain layer of the extract type registry.
//
// It holds only pure Go types and logic:
//   - ExtractType and its comparable attribute set Fields
//   - the Vocabulary of allowed enum values per attribute
//   - CreateRequest and QueryFilter, with absent values represented as nil pointers
//   - the Validator (presence, vocabulary membership, layout reference)
//   - DuplicateIndex for semantic duplicate detection
//   - identifier generation
//
// Persistence, path resolution and layout lookup are expressed as ports
// (TabularStore, PathResolver, LayoutChecker) implemented by infrastructure packages.
package domain
