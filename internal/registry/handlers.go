package registry

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/vk/phasegrid/internal/frame"
)

// HandlerFunc is the runtime signature of every handler. input is the value
// returned by NewInput after the system's arguments were bound onto it.
type HandlerFunc func(ctx context.Context, f *frame.Frame, input any) error

// RegisteredHandler holds the compiled Go parts of a handler.
type RegisteredHandler struct {
	NewInput  func() any
	InputType reflect.Type
	Fn        HandlerFunc
}

// Register registers a handler under name. Registering a name twice is a
// programming error and panics.
func (r *Registry) Register(name string, handler *RegisteredHandler) {
	if _, exists := r.handlers[name]; exists {
		panic(fmt.Sprintf("handler with name '%s' already registered", name))
	}
	slog.Debug("Registering handler.", "name", name)
	r.handlers[name] = handler
}

// Handler builds a RegisteredHandler from a typed function. I is the input
// struct; its fields are bound from the system's arguments.
func Handler[I any](fn func(ctx context.Context, f *frame.Frame, input *I) error) *RegisteredHandler {
	return &RegisteredHandler{
		NewInput:  func() any { return new(I) },
		InputType: reflect.TypeOf((*I)(nil)).Elem(),
		Fn: func(ctx context.Context, f *frame.Frame, input any) error {
			in, ok := input.(*I)
			if !ok {
				return fmt.Errorf("handler expects input %T, got %T", (*I)(nil), input)
			}
			return fn(ctx, f, in)
		},
	}
}
