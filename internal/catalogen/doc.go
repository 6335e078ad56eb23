// Package catalogen builds the signal catalog source file.
//
// The catalog is the union of two name lists:
//
//   - the curated list, a CUE file of named groups (curated.cue is embedded
//     and used by default);
//   - the FEM list, discovered from the `group` column of the Parquet tables
//     inside modal_state_space_model_2ndOrder.zip in a FEM repository.
//
// FEM names arrive in snake case and go through catalog.Normalize. The union
// is sorted and deduplicated, then rendered as kinds_gen.go for package
// catalog. Nothing here runs at simulation time.
package catalogen
