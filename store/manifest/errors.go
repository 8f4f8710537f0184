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

import (
	"errors"
	"fmt"

	"github.com/dolthub/manifest/store/hash"
)

// ErrNodeNotFound is returned by NodeStore.Read for an address absent
// from the chunk store.
var ErrNodeNotFound = errors.New("manifest node not found")

func isNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound)
}

// MissingParentError indicates a declared parent manifest root could
// not be loaded. The storage layer is missing data the changeset graph
// claims exists.
type MissingParentError struct {
	Ref hash.Hash
}

func (e MissingParentError) Error() string {
	return fmt.Sprintf("missing parent manifest %s", e.Ref)
}

// MissingSubentryError indicates a parent subtree needed during the
// merge could not be loaded from the store.
type MissingSubentryError struct {
	Name string
	Ref  hash.Hash
}

func (e MissingSubentryError) Error() string {
	return fmt.Sprintf("missing subtree %s for entry %q", e.Ref, e.Name)
}

// MissingContentError indicates a newly referenced file's metadata was
// absent from the content metadata store when the leaf was
// materialized.
type MissingContentError struct {
	Content ContentId
}

func (e MissingContentError) Error() string {
	return fmt.Sprintf("missing content metadata for %s", e.Content)
}

// InvalidBonsaiError indicates the caller-supplied changeset is
// semantically invalid: an implicit merge leaf diverges between
// parents, or the change list itself is malformed. It is distinct from
// storage faults; retrying cannot succeed until the changeset is fixed.
type InvalidBonsaiError struct {
	Path   Path
	Reason string
}

func (e InvalidBonsaiError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("invalid bonsai changeset: %s", e.Reason)
	}
	return fmt.Sprintf("invalid bonsai changeset at %q: %s", e.Path.String(), e.Reason)
}

func invalidBonsaif(p Path, format string, args ...interface{}) InvalidBonsaiError {
	return InvalidBonsaiError{Path: p, Reason: fmt.Sprintf(format, args...)}
}
