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

package router

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"waymark.dev/router/route"
)

// routeFile is the on-disk shape of a group definition:
//
//	prefix: /api
//	middlewares:
//	  - auth
//	  - name: throttle
//	    priority: 10
//	attributes:
//	  scope: admin
//	routes:
//	  - method: GET
//	    path: /users/{id}
//	    controller: users
//	    action: Show
//	    name: users.show
type routeFile struct {
	Prefix      string           `yaml:"prefix"`
	Middlewares []middlewareDecl `yaml:"middlewares"`
	Attributes  map[string]any   `yaml:"attributes"`
	Routes      []routeDecl      `yaml:"routes"`
}

type routeDecl struct {
	Method      string           `yaml:"method"`
	Path        string           `yaml:"path"`
	Controller  string           `yaml:"controller"`
	Action      string           `yaml:"action"`
	Name        string           `yaml:"name"`
	Middlewares []middlewareDecl `yaml:"middlewares"`
	Attributes  map[string]any   `yaml:"attributes"`
}

// middlewareDecl accepts either a plain middleware name or a
// name/priority mapping.
type middlewareDecl struct {
	Name     string `yaml:"name"`
	Priority int    `yaml:"priority"`
}

func (d *middlewareDecl) UnmarshalYAML(data []byte) error {
	var name string
	if err := yaml.Unmarshal(data, &name); err == nil {
		d.Name = name

		return nil
	}

	type plain middlewareDecl
	var p plain
	if err := yaml.Unmarshal(data, &p); err != nil {
		return err
	}
	*d = middlewareDecl(p)

	return nil
}

func declaredMiddlewares(decls []middlewareDecl) []route.Middleware {
	middlewares := make([]route.Middleware, 0, len(decls))
	for _, d := range decls {
		middlewares = append(middlewares, route.Middleware{Name: d.Name, Priority: d.Priority})
	}

	return middlewares
}

// GroupByFile loads one YAML group definition and registers its routes
// inside a group scope built from the file's prefix, middlewares, and
// attributes. Handlers are controller references resolved against the
// router's controller registry, so every route in the file is validated at
// load time.
func (r *Router) GroupByFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRouteFileInvalid, path, err)
	}

	var file routeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRouteFileInvalid, path, err)
	}

	opts := GroupOptions{
		Prefix:      file.Prefix,
		Middlewares: declaredMiddlewares(file.Middlewares),
		Attributes:  file.Attributes,
	}

	return r.GroupFunc(opts, func(r *Router) error {
		for _, decl := range file.Routes {
			if decl.Path == "" || decl.Controller == "" {
				return fmt.Errorf("%w: %s: route needs a path and a controller", ErrRouteFileInvalid, path)
			}
			verb := decl.Method
			if verb == "" {
				verb = "GET"
			}

			var handler route.Handler
			if decl.Action != "" {
				handler = route.ControllerMethod{Name: decl.Controller, Action: decl.Action}
			} else {
				handler = route.Controller{Name: decl.Controller}
			}

			reg, err := r.Handle(verb, decl.Path, handler, declaredMiddlewares(decl.Middlewares)...)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if len(decl.Attributes) > 0 {
				reg.WithAttributes(decl.Attributes)
			}
			if decl.Name != "" {
				if err := reg.Named(decl.Name); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
		}

		return nil
	})
}

// GroupByDir loads every .yaml/.yml group definition in a directory, in
// lexical order.
func (r *Router) GroupByDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRouteFileInvalid, dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".yaml", ".yml":
			if err := r.GroupByFile(filepath.Join(dir, entry.Name())); err != nil {
				return err
			}
		}
	}

	return nil
}

// errorPageDecl accepts either a plain controller name or a
// controller/action mapping.
type errorPageDecl struct {
	Controller string `yaml:"controller"`
	Action     string `yaml:"action"`
}

func (d *errorPageDecl) UnmarshalYAML(data []byte) error {
	var name string
	if err := yaml.Unmarshal(data, &name); err == nil {
		d.Controller = name

		return nil
	}

	type plain errorPageDecl
	var p plain
	if err := yaml.Unmarshal(data, &p); err != nil {
		return err
	}
	*d = errorPageDecl(p)

	return nil
}

// ErrorPagesFromFile loads a YAML status-code → controller map into the
// error-page table:
//
//	404: errors
//	405:
//	  controller: errors
//	  action: MethodNotAllowed
func (r *Router) ErrorPagesFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRouteFileInvalid, path, err)
	}

	var pages map[int]errorPageDecl
	if err := yaml.Unmarshal(data, &pages); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRouteFileInvalid, path, err)
	}

	for status, decl := range pages {
		var handler route.Handler
		if decl.Action != "" {
			handler = route.ControllerMethod{Name: decl.Controller, Action: decl.Action}
		} else {
			handler = route.Controller{Name: decl.Controller}
		}
		if err := r.SetErrorPage(status, handler); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	return nil
}
