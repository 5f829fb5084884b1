// Package manifest loads batch import files of extract types.
//
// A manifest is YAML with a single extract_types list. Each entry uses the
// persisted column names as keys:
//
//	extract_types:
//	  - layout_id: 1001
//	    delimiter: tab sep
//	    fully_qualified: '"'
//	    split_by_size: 250MB
//	    storage_files: "yes"
//	    archive_type: gz
//	    extension: tsv
//	    internal_name: daily sales
//
// Files are checked against an embedded JSON Schema before decoding, so
// structural mistakes (unknown keys, wrong types) are reported with their
// location. Vocabulary membership is left to the registry's validator.
package manifest
