// Package scaffold materializes the canonical patch directory layout
// for an acquired firmware binary:
//
//	<output_root>/<chip_id>/<version_id>/<firmware_binary>
//	<output_root>/<chip_id>/<version_id>/definitions.mk
//	<output_root>/<chip_id>/<version_id>/Makefile
//
// Scaffolding is idempotent and additive. The binary is always written
// (last write wins, no backup); the two build templates are written
// only when absent, so configuration the user has started filling in
// survives re-extraction. The templates carry unresolved "0x" address
// placeholders because their values require external binary analysis.
//
// Concurrent scaffolds into the same directory are not safe: the
// binary overwrite is not atomic across processes. The pipeline
// assumes single-invocation, single-operator use.
package scaffold
