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
	"os"
	"path/filepath"
	"testing"

	"github.com/solarisdb/lrucache/golibs/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testB struct {
	IntB    int `json:"ttt"`
	IntBPtr *int
}

type testA struct {
	Field     int
	Name      string
	Ratio     float64 `json:"ratio,omitempty"`
	FieldB    testB
	FieldBPtr *testB
	List      []string
}

func intPtr(v int) *int {
	return &v
}

func TestEnricher_ApplyKeyValues(t *testing.T) {
	e := newEnricher(testA{})
	assert.Nil(t, e.ApplyKeyValues("teST", "_", map[string]string{
		"test_list":          `["aa", "bb"]`,
		"TEST_FieldBPtr_ttt": "23",
		"TEST_FieldB_IntB":   "33",
		"test_name":          "hello world",
		"test_ratio":         "0.25",
		"other_field":        "1",
	}))
	assert.Equal(t, testA{Name: "hello world", Ratio: 0.25, FieldB: testB{IntB: 33}, FieldBPtr: &testB{IntB: 23}, List: []string{"aa", "bb"}}, e.Value())

	assert.Nil(t, e.ApplyKeyValues("teST", "_", map[string]string{"test_fieldbptr": `{"ttt": 13, "IntBPtr": 22}`}))
	assert.Equal(t, &testB{IntB: 13, IntBPtr: intPtr(22)}, e.Value().FieldBPtr)

	assert.Nil(t, e.ApplyKeyValues("", "_", map[string]string{"fieldbptr_ttt": "42"}))
	assert.Equal(t, 42, e.Value().FieldBPtr.IntB)

	// unknown and empty names are skipped
	old := e.Value()
	assert.Nil(t, e.ApplyKeyValues("", "_", map[string]string{"_": "some value", "unknown": "1"}))
	assert.Equal(t, old, e.Value())

	err := e.ApplyKeyValues("", "_", map[string]string{"field": "not a number"})
	assert.ErrorIs(t, err, errors.ErrInvalid)
}

func TestEnricher_ApplyEnvVariables(t *testing.T) {
	t.Setenv("LRUTEST_FIELD", "7")
	t.Setenv("lrutest_fieldb_ttt", "8")
	e := newEnricher(testA{Field: 1})
	assert.Nil(t, e.ApplyEnvVariables("LRUTEST", "_"))
	assert.Equal(t, 7, e.Value().Field)
	assert.Equal(t, 8, e.Value().FieldB.IntB)
}

func TestEnricher_ApplyOther(t *testing.T) {
	a := testA{FieldBPtr: &testB{IntB: 1233}, FieldB: testB{IntB: 12}, Name: "a"}
	b := testA{FieldBPtr: &testB{IntBPtr: intPtr(10)}, FieldB: testB{IntB: 22}, List: []string{"aa", "bbb"}}
	ea := newEnricher(a)
	eb := newEnricher(b)
	assert.Nil(t, ea.ApplyOther(eb))
	assert.Equal(t, 10, *ea.Value().FieldBPtr.IntBPtr)
	assert.Equal(t, 1233, ea.Value().FieldBPtr.IntB)
	assert.Equal(t, 22, ea.Value().FieldB.IntB)
	assert.Equal(t, "a", ea.Value().Name)
	assert.Equal(t, eb.Value().List, ea.Value().List)
}

func TestNewEnricher(t *testing.T) {
	assert.Panics(t, func() {
		NewEnricher(123)
	})
	assert.NotNil(t, NewEnricher(testA{}))
}

func TestEnricher_LoadFromFile(t *testing.T) {
	dir := t.TempDir()
	e := newEnricher(testA{})

	assert.Nil(t, e.LoadFromFile(""))
	assert.NotNil(t, e.LoadFromFile(filepath.Join(dir, "absent.yaml")))

	fn := filepath.Join(dir, "bad.yaml")
	createFile(t, fn, `sdfkjlafj aldskfjalfdj`)
	assert.NotNil(t, e.LoadFromFile(fn))

	fn = filepath.Join(dir, "cfg.txt")
	createFile(t, fn, `field: 1`)
	assert.ErrorIs(t, e.LoadFromFile(fn), errors.ErrInvalid)

	fn = filepath.Join(dir, "goodButEmpty.yaml")
	createFile(t, fn, `some: 1234`)
	assert.Nil(t, e.LoadFromFile(fn))
	assert.Equal(t, testA{}, e.Value())

	fn = filepath.Join(dir, "good.yml")
	createFile(t, fn, `
fieldb:
    ttt: 2`)
	assert.Nil(t, e.LoadFromFile(fn))
	assert.Equal(t, testA{FieldB: testB{IntB: 2}}, e.Value())

	fn = filepath.Join(dir, "good.json")
	createFile(t, fn, `{"fieldb": {"ttt": 22}, "ratio": 0.5}`)
	assert.Nil(t, e.LoadFromFile(fn))
	assert.Equal(t, testA{FieldB: testB{IntB: 22}, Ratio: 0.5}, e.Value())

	fn = filepath.Join(dir, "yaml.json")
	createFile(t, fn, `
fieldb:
    ttt: 2`)
	assert.NotNil(t, e.LoadFromFile(fn))
}

func Test_isQuoted(t *testing.T) {
	assert.False(t, isQuoted("       "))
	assert.False(t, isQuoted(""))
	assert.False(t, isQuoted("\"asdfa"))
	assert.False(t, isQuoted("asdfasd\""))
	assert.False(t, isQuoted("\""))
	assert.True(t, isQuoted("\"\""))
	assert.True(t, isQuoted("\"asdf\""))
	assert.True(t, isQuoted("   \"asdfasdf\"asdf\" "))
}

func createFile(t *testing.T, name, data string) {
	require.Nil(t, os.WriteFile(name, []byte(data), 0o644))
}
