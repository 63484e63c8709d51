// Package widgets provides concrete interactive controls that can back
// graph input nodes: an in-process Slider and a socket.io RemoteControl
// fed by a live event stream.
package widgets
