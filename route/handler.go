// Copyright 2026 The Waymark Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package route

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNilHandler indicates that a handler reference carries no target.
	ErrNilHandler = errors.New("handler must not be nil")

	// ErrNotAFunction indicates that a Func handler wraps a non-function value.
	ErrNotAFunction = errors.New("handler is not a function")

	// ErrUnknownController indicates that a controller name is not registered.
	ErrUnknownController = errors.New("unknown controller")

	// ErrUnknownAction indicates that a controller has no such action method.
	ErrUnknownAction = errors.New("unknown controller action")
)

// Handler identifies the code that serves a matched route.
//
// It is a closed set of three shapes, validated once at registration and
// resolved with a single type switch at dispatch time:
//
//   - Func: a plain invocable
//   - Controller: a registered controller, dispatched through its Handle method
//   - ControllerMethod: a named action on a registered controller
type Handler interface {
	isHandler()
}

// Func wraps a plain invocable handler. The router does not constrain the
// function signature; the pipeline that executes the chain defines it.
type Func struct {
	Fn any
}

// Controller references a registered controller by name. Dispatch invokes
// the controller's Handle method.
type Controller struct {
	Name string
}

// ControllerMethod references a named action method on a registered
// controller.
type ControllerMethod struct {
	Name   string
	Action string
}

func (Func) isHandler()             {}
func (Controller) isHandler()       {}
func (ControllerMethod) isHandler() {}

// ControllerLookup resolves a controller name to its registered instance.
type ControllerLookup func(name string) (any, bool)

// ValidateHandler checks a handler reference at registration time so that
// malformed handlers fail at boot instead of on the first request.
//
// Func handlers must wrap a non-nil function value. Controller handlers must
// name a registered controller exposing a Handle method; ControllerMethod
// handlers must name a registered controller exposing the given action.
func ValidateHandler(h Handler, lookup ControllerLookup) error {
	switch h := h.(type) {
	case nil:
		return ErrNilHandler
	case Func:
		if h.Fn == nil {
			return ErrNilHandler
		}
		if reflect.TypeOf(h.Fn).Kind() != reflect.Func {
			return fmt.Errorf("%w: %T", ErrNotAFunction, h.Fn)
		}
	case Controller:
		return validateAction(h.Name, "Handle", lookup)
	case ControllerMethod:
		return validateAction(h.Name, h.Action, lookup)
	default:
		return fmt.Errorf("%w: unsupported handler shape %T", ErrNilHandler, h)
	}

	return nil
}

func validateAction(name, action string, lookup ControllerLookup) error {
	if lookup == nil {
		return fmt.Errorf("%w: %q (no controllers registered)", ErrUnknownController, name)
	}
	target, ok := lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownController, name)
	}
	if !reflect.ValueOf(target).MethodByName(action).IsValid() {
		return fmt.Errorf("%w: %s.%s", ErrUnknownAction, name, action)
	}

	return nil
}
