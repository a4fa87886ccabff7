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

// Param describes one parameter placeholder in a route pattern.
//
// The placeholder grammar is shared by the forward matcher (the registry
// trie) and the reverse URL builder, so a pattern that registers also
// reverses:
//
//	{name}   required parameter, binds exactly one path segment
//	{name?}  optional parameter, may be omitted by the request path
//	{name*}  greedy parameter, binds the remainder of the path (also optional)
type Param struct {
	Name     string // Placeholder identifier, without braces or markers
	Optional bool   // True for {name?} and {name*}
	Greedy   bool   // True for {name*}
}

// ParseParam parses a single path segment as a parameter placeholder.
// It returns the parsed descriptor and true when the segment matches the
// placeholder grammar, or a zero Param and false for static segments.
//
// Malformed placeholders (empty or non-identifier names, stray braces) are
// treated as static text rather than rejected, so literal segments that
// merely contain braces keep working.
func ParseParam(segment string) (Param, bool) {
	if len(segment) < 3 || segment[0] != '{' || segment[len(segment)-1] != '}' {
		return Param{}, false
	}

	inner := segment[1 : len(segment)-1]

	p := Param{}
	switch inner[len(inner)-1] {
	case '?':
		p.Optional = true
		inner = inner[:len(inner)-1]
	case '*':
		p.Optional = true
		p.Greedy = true
		inner = inner[:len(inner)-1]
	}

	if !isIdentifier(inner) {
		return Param{}, false
	}
	p.Name = inner

	return p, true
}

// String renders the parameter back into its placeholder form.
func (p Param) String() string {
	marker := ""
	if p.Greedy {
		marker = "*"
	} else if p.Optional {
		marker = "?"
	}

	return "{" + p.Name + marker + "}"
}

// isIdentifier reports whether s is a valid placeholder identifier:
// a letter or underscore followed by letters, digits, or underscores.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}

	return true
}
