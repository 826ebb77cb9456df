// Package app wires reportassist together: configuration, logging, the
// completion library, suggestion clients and one assist engine over the
// report being edited. It also provides the terminal host that drives the
// engine from a tcell screen.
package app
