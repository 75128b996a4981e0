// Package app defines the runtime contract shared by the executable
// entrypoints under cmd/.
package app

// Runner represents a runnable application component.
type Runner interface {
	Run() error
}
