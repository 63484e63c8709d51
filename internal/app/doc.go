// Package app wires the application together: it loads a pipeline
// definition, builds the dataflow graph, and either evaluates it once,
// renders it as DOT, or watches it for live updates from remote controls.
package app
