// Package physics holds the transition model integrated by this tool.
//
// [ThreeField] implements [dynamics.System] in the compactified time
// coordinate. It also implements [dynamics.Configurable] for runtime
// parameter adjustment from the live view.
package physics
