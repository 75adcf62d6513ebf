// Copyright 2024 The Solaris Authors
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

package bench

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/solarisdb/lrucache/golibs/config"
	"github.com/solarisdb/lrucache/golibs/container/lru"
	"github.com/solarisdb/lrucache/golibs/errors"
	"github.com/solarisdb/lrucache/golibs/logging"
)

type (
	// Config defines the bench workload
	Config struct {
		// Capacity is the cache maximum size
		Capacity int `json:"capacity"`
		// Workers is the number of goroutines working with the cache concurrently
		Workers int `json:"workers"`
		// KeysPerWorker is the size of the key set of every worker, the sets are disjoint
		KeysPerWorker int `json:"keysPerWorker"`
		// OpsPerWorker is the number of operations every worker does
		OpsPerWorker int `json:"opsPerWorker"`
		// LookupRatio is the part of operations which start from Lookup, the rest are Add
		LookupRatio float64 `json:"lookupRatio"`
		// Seed for the workers random generators, 0 means time based
		Seed int64 `json:"seed"`
		// ProgressInterval defines how often the progress is logged, e.g. "1s". Empty disables it.
		ProgressInterval string `json:"progressInterval"`
		// LogLevel is one of ERROR, WARN, INFO, DEBUG or TRACE
		LogLevel string `json:"logLevel"`
	}
)

// EnvPrefix is the prefix of the environment variables which override the configuration
const EnvPrefix = "LRUCACHE"

// GetDefaultConfig returns the default bench configuration
func GetDefaultConfig() *Config {
	return &Config{
		Capacity:         lru.DefaultCacheSize,
		Workers:          8,
		KeysPerWorker:    2048,
		OpsPerWorker:     20000,
		LookupRatio:      0.7,
		ProgressInterval: "1s",
		LogLevel:         "INFO",
	}
}

// BuildConfig builds the configuration from the defaults, the cfgFile (if it is not empty)
// and the environment variables with the EnvPrefix
func BuildConfig(cfgFile string) (*Config, error) {
	log := logging.NewLogger("bench.ConfigBuilder")
	log.Infof("trying to build config. cfgFile=%s", cfgFile)
	// the file is unmarshaled over the defaults, so it may set the zero values explicitly
	e := config.NewEnricher(*GetDefaultConfig())
	if err := e.LoadFromFile(cfgFile); err != nil {
		return nil, fmt.Errorf("could not read data from the file %s: %w", cfgFile, err)
	}
	if err := e.ApplyEnvVariables(EnvPrefix, "_"); err != nil {
		return nil, err
	}
	cfg := e.Value()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration values, it returns an error wrapping errors.ErrInvalid
func (c *Config) Validate() error {
	if c.Capacity < 1 {
		return fmt.Errorf("capacity=%d must be positive: %w", c.Capacity, errors.ErrInvalid)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers=%d must be positive: %w", c.Workers, errors.ErrInvalid)
	}
	if c.KeysPerWorker < 1 {
		return fmt.Errorf("keysPerWorker=%d must be positive: %w", c.KeysPerWorker, errors.ErrInvalid)
	}
	if c.OpsPerWorker < 0 {
		return fmt.Errorf("opsPerWorker=%d must not be negative: %w", c.OpsPerWorker, errors.ErrInvalid)
	}
	if c.LookupRatio < 0 || c.LookupRatio > 1 {
		return fmt.Errorf("lookupRatio=%f must be in [0..1]: %w", c.LookupRatio, errors.ErrInvalid)
	}
	if _, err := c.progressInterval(); err != nil {
		return err
	}
	if c.LogLevel != "" {
		if _, err := logging.ParseLevel(c.LogLevel); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) progressInterval() (time.Duration, error) {
	if c.ProgressInterval == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.ProgressInterval)
	if err != nil {
		return 0, fmt.Errorf("progressInterval=%q: %s: %w", c.ProgressInterval, err, errors.ErrInvalid)
	}
	return d, nil
}

func (c *Config) String() string {
	b, _ := json.MarshalIndent(*c, "", "  ")
	return string(b)
}
