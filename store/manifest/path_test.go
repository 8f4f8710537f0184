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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePath(t *testing.T) {
	assert.True(t, ParsePath("").IsRoot())
	assert.Equal(t, Path{"a"}, ParsePath("a"))
	assert.Equal(t, Path{"a", "b", "c"}, ParsePath("a/b/c"))
	assert.Equal(t, "a/b/c", ParsePath("a/b/c").String())
}

func TestPathChildDoesNotAlias(t *testing.T) {
	p := make(Path, 1, 4)
	p[0] = "a"

	b := p.Child("b")
	c := p.Child("c")
	assert.Equal(t, Path{"a", "b"}, b)
	assert.Equal(t, Path{"a", "c"}, c)
}

func TestPathCompare(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "a", -1},
		{"a", "", 1},
		{"a", "a", 0},
		{"a", "b", -1},
		{"a/b", "a", 1},
		{"a/b", "a/c", -1},
		{"a/b/c", "a/b/c", 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ParsePath(c.a).Compare(ParsePath(c.b)), "%q vs %q", c.a, c.b)
	}
}
