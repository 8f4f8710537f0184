// Copyright 2026 Dolthub, Inc.
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

package manifest

import "strings"

// Path is a sequence of path elements. The empty sequence is the tree
// root. Paths order element-wise by raw bytes.
type Path []string

// ParsePath splits a slash-separated string into a Path. The empty
// string parses to the root path.
func ParsePath(s string) Path {
	if s == "" {
		return Path{}
	}
	return Path(strings.Split(s, "/"))
}

// String returns the slash-joined form of p.
func (p Path) String() string {
	return strings.Join(p, "/")
}

// IsRoot returns true for the empty path.
func (p Path) IsRoot() bool {
	return len(p) == 0
}

// Child returns p extended by one element.
func (p Path) Child(name string) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = name
	return out
}

// Compare orders paths element-wise by raw bytes, shorter prefix first.
func (p Path) Compare(o Path) int {
	for i := 0; i < len(p) && i < len(o); i++ {
		if c := strings.Compare(p[i], o[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(p) < len(o):
		return -1
	case len(p) > len(o):
		return 1
	default:
		return 0
	}
}

// FileChange is the new value of a changed path: the content address of
// the file's bytes and its type.
type FileChange struct {
	Content ContentId
	Type    FileType
}

// PathChange is one entry of a changeset's change list. A nil Change is
// an explicit deletion of the file at Path.
type PathChange struct {
	Path   Path
	Change *FileChange
}
