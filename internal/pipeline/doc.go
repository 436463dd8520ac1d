// Package pipeline orchestrates one extraction run: resolved
// chip/version in, scaffolded patch directory out.
//
// The run is strictly sequential (acquire, select, scaffold), with no
// concurrency and no retry. Failures are local to their step and come
// back wrapped with the step name ("acquisition: ...",
// "scaffolding: ...") so diagnostics can say what to fix. A partial
// transfer is not a failure: scaffolding proceeds with whatever was
// transferred and the report carries the per-file failures.
package pipeline
