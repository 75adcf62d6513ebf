// Copyright 2023 The acquirecloud Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/solarisdb/lrucache/golibs/errors"
	"github.com/solarisdb/lrucache/golibs/logging"
)

type (
	// Enricher keeps a structure value of the type T and builds it from several sources:
	// the defaults, a YAML or JSON file, another enricher and the environment variables.
	//
	// The following contract is applied to the type T:
	//   - only the exported fields are updated
	//   - a field may be addressed either by its name, or by the name from the json tag
	//   - the names are case-insensitive
	Enricher[T any] interface {
		// LoadFromFile reads the file and unmarshals it over the current value. The format
		// is defined by the file extension (.yaml, .yml or .json). Empty fileName is ignored.
		LoadFromFile(fileName string) error

		// ApplyOther overwrites the current value fields by the non-zero fields of the other
		// enricher value. Nested structures are applied field by field.
		ApplyOther(other Enricher[T]) error

		// ApplyEnvVariables applies the environment variables which names start from prefix+sep.
		// The rest of the name is the path to the field, separated by sep, so for the prefix
		// "LRUCACHE" and sep "_" the variable LRUCACHE_CAPACITY=10 sets the field Capacity.
		ApplyEnvVariables(prefix, sep string) error

		// ApplyKeyValues is the same as ApplyEnvVariables, but uses the keyValues map. The values
		// are JSON values, the strings may be not quoted.
		ApplyKeyValues(prefix, sep string, keyValues map[string]string) error

		// Value returns the enricher current value
		Value() T
	}

	enricher[T any] struct {
		log logging.Logger
		val T
	}
)

// NewEnricher creates the Enricher with the initial value val. The type T must be a struct.
func NewEnricher[T any](val T) Enricher[T] {
	tp := reflect.TypeOf(val)
	if tp == nil || tp.Kind() != reflect.Struct {
		panic(fmt.Sprintf("only structs are acceptable in the Enricher, but got %v", tp))
	}
	return newEnricher(val)
}

func newEnricher[T any](val T) *enricher[T] {
	return &enricher[T]{val: val, log: logging.NewLogger("config.enricher." + reflect.TypeOf(val).Name())}
}

func (e *enricher[T]) LoadFromFile(fileName string) error {
	if fileName == "" {
		e.log.Debugf("no file name is provided, nothing to load")
		return nil
	}
	buf, err := os.ReadFile(fileName)
	if err != nil {
		return fmt.Errorf("could not read file %s: %w", fileName, err)
	}

	switch ext := strings.ToLower(filepath.Ext(strings.TrimSpace(fileName))); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(buf, &e.val)
	case ".json":
		err = json.Unmarshal(buf, &e.val)
	default:
		return fmt.Errorf("cannot recognize file format %s, expecting .json or .yaml: %w", fileName, errors.ErrInvalid)
	}
	if err != nil {
		return fmt.Errorf("could not unmarshal file %s: %w", fileName, err)
	}
	e.log.Infof("the configuration is loaded from %s", fileName)
	return nil
}

func (e *enricher[T]) ApplyOther(other Enricher[T]) error {
	oe, ok := other.(*enricher[T])
	if !ok {
		return fmt.Errorf("unsupported enricher implementation %T: %w", other, errors.ErrInvalid)
	}
	applyNonZero(reflect.ValueOf(&oe.val).Elem(), reflect.ValueOf(&e.val).Elem())
	return nil
}

func (e *enricher[T]) ApplyEnvVariables(prefix, sep string) error {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env[k] = v
	}
	return e.ApplyKeyValues(prefix, sep, env)
}

func (e *enricher[T]) ApplyKeyValues(prefix, sep string, keyValues map[string]string) error {
	pfx := ""
	if prefix != "" {
		pfx = strings.ToUpper(prefix + sep)
	}
	for k, v := range keyValues {
		key := strings.ToUpper(k)
		if !strings.HasPrefix(key, pfx) {
			continue
		}
		path := strings.Split(key[len(pfx):], strings.ToUpper(sep))
		ok, err := assign(reflect.ValueOf(&e.val).Elem(), path, v)
		if err != nil {
			return fmt.Errorf("could not apply %s=%q: %w", k, v, err)
		}
		if ok {
			e.log.Infof("applied %s", k)
		} else {
			e.log.Debugf("the key %s does not match any field, skipped", k)
		}
	}
	return nil
}

func (e *enricher[T]) Value() T {
	return e.val
}

func applyNonZero(src, dst reflect.Value) {
	if src.IsZero() {
		return
	}
	switch src.Kind() {
	case reflect.Ptr:
		if src.Elem().Kind() != reflect.Struct {
			dst.Set(src)
			return
		}
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		applyNonZero(src.Elem(), dst.Elem())
	case reflect.Struct:
		for i := 0; i < src.NumField(); i++ {
			if src.Type().Field(i).IsExported() {
				applyNonZero(src.Field(i), dst.Field(i))
			}
		}
	default:
		dst.Set(src)
	}
}

// assign walks the path over the struct v and sets the value s to the found field
func assign(v reflect.Value, path []string, s string) (bool, error) {
	if len(path) == 0 || path[0] == "" {
		return false, nil
	}
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return false, nil
	}
	tp := v.Type()
	for i := 0; i < tp.NumField(); i++ {
		sf := tp.Field(i)
		if !sf.IsExported() || !matchField(sf, path[0]) {
			continue
		}
		if len(path) > 1 {
			return assign(v.Field(i), path[1:], s)
		}
		return true, setFromString(v.Field(i), s)
	}
	return false, nil
}

func matchField(sf reflect.StructField, name string) bool {
	if strings.EqualFold(sf.Name, name) {
		return true
	}
	alias, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	return alias != "" && alias != "-" && strings.EqualFold(alias, name)
}

func setFromString(field reflect.Value, s string) error {
	if s == "" {
		return nil
	}
	if isStringKind(field.Type()) && !isQuoted(s) {
		s = strconv.Quote(s)
	}
	ptr := reflect.New(field.Type())
	if err := json.Unmarshal([]byte(s), ptr.Interface()); err != nil {
		return fmt.Errorf("%s: %w", err, errors.ErrInvalid)
	}
	field.Set(ptr.Elem())
	return nil
}

func isStringKind(tp reflect.Type) bool {
	if tp.Kind() == reflect.Ptr {
		return isStringKind(tp.Elem())
	}
	return tp.Kind() == reflect.String
}

func isQuoted(s string) bool {
	s = strings.TrimSpace(s)
	return len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"'
}
