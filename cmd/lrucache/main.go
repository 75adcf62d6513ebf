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

package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/solarisdb/lrucache/golibs/context"
	"github.com/solarisdb/lrucache/golibs/logging"
	"github.com/solarisdb/lrucache/pkg/bench"
	"github.com/solarisdb/lrucache/pkg/version"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := context.NewSignalsContext(os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lrucache",
		Short:         "lrucache runs workloads against the thread-safe LRU cache",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newBenchCmd(), newVersionCmd())
	return root
}

func newBenchCmd() *cobra.Command {
	var cfgFile string
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "runs the concurrent workload and checks the cache invariants",
		Long: "runs the concurrent workload and checks the cache invariants. The configuration is read from\n" +
			"the --config file (.yaml or .json) and may be overridden by the " + bench.EnvPrefix + "_* environment variables,\n" +
			"for example " + bench.EnvPrefix + "_CAPACITY=128.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bench.BuildConfig(cfgFile)
			if err != nil {
				return err
			}
			if cfg.LogLevel != "" {
				lvl, _ := logging.ParseLevel(cfg.LogLevel)
				logging.SetLevel(lvl)
			}
			rep, err := bench.Run(cmd.Context(), *cfg)
			if rep != nil {
				fmt.Fprintln(cmd.OutOrStdout(), rep)
			}
			if err != nil {
				return err
			}
			if !rep.OK() {
				return fmt.Errorf("%d invariant violations detected", rep.Violations)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&cfgFile, "config", "c", "", "the configuration file path (.yaml or .json)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "prints the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.BuildVersionString())
		},
	}
}
