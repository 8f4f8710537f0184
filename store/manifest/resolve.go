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

// resolveImplicitLeaf decides the value of a file path that has no
// explicit change and must be carried forward through a merge. The
// carry is valid only when the changeset has at least two parents and
// every parent holding the path agrees exactly on (content, type); a
// changeset whose parents diverge at an unchanged file is structurally
// invalid and must be rejected, not papered over.
//
// parentLeaves holds the values from parents that have a file at the
// path, in parent order; it is never empty when this is called.
func resolveImplicitLeaf(p Path, parentLeaves []LeafEntry, parentCount int) (LeafEntry, error) {
	if parentCount < 2 {
		return LeafEntry{}, invalidBonsaif(p, "unresolved implicit file with %d parent(s)", parentCount)
	}

	first := parentLeaves[0]
	for _, l := range parentLeaves[1:] {
		if !l.SameIdentity(first) {
			return LeafEntry{}, invalidBonsaif(p,
				"parents diverge on unchanged file: %s (%s) vs %s (%s)",
				first.Content, first.Type, l.Content, l.Type)
		}
	}
	return first, nil
}
