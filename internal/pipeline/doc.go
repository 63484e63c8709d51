// Package pipeline loads declarative HCL pipeline definitions and builds
// the corresponding dataflow graph.
//
// A pipeline is a set of named blocks:
//
//	input "lo" {
//	  value = 2
//	}
//
//	remote "beam" {
//	  url   = "ws://localhost:9000/socket.io"
//	  event = "reading"
//	}
//
//	derive "window" {
//	  expr = max(lo, beam.intensity) * 2
//	}
//
// input blocks evaluate to literal cty values, remote blocks become widget
// nodes backed by a socket.io control, and derive blocks become computation
// nodes whose dependencies are the expression's root variables.
package pipeline
