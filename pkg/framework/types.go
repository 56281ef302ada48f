package framework

import (
	"context"
	"strconv"
)

// Runnable is a long running part of a binary, like the device worker or
// the MQTT bridge. Run returns once ctx is done.
type Runnable interface {
	Run(context.Context) error
}

// Named gives a Runnable a name in logs and errors.
type Named interface {
	Name() string
}

// RunFunc adapts a func to Runnable.
type RunFunc func(context.Context) error

// Run calls f.
func (f RunFunc) Run(ctx context.Context) error {
	return f(ctx)
}

type namedRunnable struct {
	Runnable
	name string
}

func (r *namedRunnable) Name() string {
	return r.name
}

// NamedRun wraps a Runnable with a name.
func NamedRun(name string, runnable Runnable) Runnable {
	return &namedRunnable{name: name, Runnable: runnable}
}

// nameOf returns the name of a Named runner, or its index.
func nameOf(runner Runnable, index int) string {
	if named, ok := runner.(Named); ok {
		return named.Name()
	}
	return "#" + strconv.Itoa(index)
}
