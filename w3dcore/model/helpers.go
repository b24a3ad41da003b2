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

package model

import (
	"encoding/json"
	"fmt"

	"dirpx.dev/rxmerr"
	"gopkg.in/yaml.v3"
)

// ValidateAll validates a slice of models and returns every validation error
// encountered, not only the first.
//
// Each failure is wrapped with the model's position in the slice and its
// type name so that a user can locate the offending entity in a project.
// Failures are aggregated with rxmerr.Collector; the result is nil when all
// models are valid or the slice is empty.
//
// Example:
//
//	if err := model.ValidateAll(project.Objects()); err != nil {
//	    logger.Log.WithError(err).Error("objects are inconsistent")
//	}
func ValidateAll[T Model](models []T) error {
	c := rxmerr.NewCollector()

	for i, m := range models {
		if err := m.Validate(); err != nil {
			c.Append(fmt.Errorf("%s[%d]: %w", m.TypeName(), i, err))
		}
	}

	return c.Err()
}

// MustValidate validates a model and panics if validation fails.
//
// Callers MUST only use MustValidate where an invalid model is a programming
// error: package-level fixtures, test setup, static defaults.
func MustValidate[T Model](m T) T {
	if err := m.Validate(); err != nil {
		panic(fmt.Sprintf("model validation failed for %s: %v", m.TypeName(), err))
	}
	return m
}

// SafeString returns Redacted unless unsafe is true, in which case it
// returns String. It keeps the choice between the two explicit at call
// sites that log.
func SafeString[T Model](m T, unsafe bool) string {
	if unsafe {
		return m.String()
	}
	return m.Redacted()
}

// ToJSON validates m and renders it as indented JSON.
func ToJSON[T Model](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return json.MarshalIndent(m, "", "  ")
}

// ToYAML validates m and renders it as YAML.
func ToYAML[T Model](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return yaml.Marshal(m)
}
