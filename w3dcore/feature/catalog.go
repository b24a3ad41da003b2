/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package feature

import (
	"fmt"
	"maps"
	"slices"

	"dirpx.dev/w3d/w3dcore/errors"
	"dirpx.dev/w3d/w3dcore/xmldoc"
)

// Factory builds one feature from the element carrying its tag.
type Factory[T any] func(*xmldoc.Node) (T, error)

// Catalog is a closed table from element tag to factory for one family of
// kinds (for example, actions). The table is fixed at construction.
type Catalog[T any] struct {
	family    string
	factories map[string]Factory[T]
}

// NewCatalog returns a catalog for family holding a copy of factories.
func NewCatalog[T any](family string, factories map[string]Factory[T]) *Catalog[T] {
	return &Catalog[T]{family: family, factories: maps.Clone(factories)}
}

// Family returns the catalog's family name.
func (c *Catalog[T]) Family() string { return c.family }

// Dispatch builds the feature registered for n's tag. An unknown tag yields
// *errors.UnrecognizedKindError.
func (c *Catalog[T]) Dispatch(n *xmldoc.Node) (T, error) {
	var zero T
	if n == nil {
		return zero, &errors.UnrecognizedKindError{Family: c.family, Tag: ""}
	}
	f, ok := c.factories[n.Tag]
	if !ok {
		return zero, &errors.UnrecognizedKindError{Family: c.family, Tag: n.Tag}
	}
	return f(n)
}

// Has reports whether tag is registered.
func (c *Catalog[T]) Has(tag string) bool {
	_, ok := c.factories[tag]
	return ok
}

// Tags returns the registered tags, sorted.
func (c *Catalog[T]) Tags() []string {
	return slices.Sorted(maps.Keys(c.factories))
}

// Require panics unless every tag has a factory. Packages call it from
// init so that an incomplete table stops the process at startup.
func (c *Catalog[T]) Require(tags ...string) {
	for _, tag := range tags {
		if f, ok := c.factories[tag]; !ok || f == nil {
			panic(fmt.Sprintf("feature: %s catalog has no factory for %s", c.family, tag))
		}
	}
}
