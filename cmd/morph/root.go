// Copyright 2025 go-highway Authors
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

package main

import (
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ajroetker/go-morpho/morpho"
)

// app is the state shared by all commands. It is filled in by the root
// command before any subcommand runs.
type app struct {
	configPath string
	verbose    bool

	cfg    *Config
	logger *charmlog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "morph",
		Short:        "Grayscale morphology on image files",
		Long:         `morph dilates and erodes grayscale images with flat structuring elements (discs, rectangles, lines and masks) in time independent of the element size.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if a.verbose {
				level = charmlog.DebugLevel
			}
			a.logger = newLogger(cmd.ErrOrStderr(), level)
			morpho.SetLogger(slogger(a.logger))

			cfg, err := LoadConfig(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			if a.configPath != "" {
				a.logger.Debug("loaded config", "path", a.configPath)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			morpho.SetLogger(nil)
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", os.Getenv("MORPH_CONFIG"), "config file (.yaml, .yml or .toml)")

	root.AddCommand(newMorphCmd(a, "dilate", "Dilate images (maximum over the structuring element)"))
	root.AddCommand(newMorphCmd(a, "erode", "Erode images (minimum over the structuring element)"))
	root.AddCommand(newBenchCmd(a))
	root.AddCommand(newInfoCmd())
	root.AddCommand(newConfigCmd(a))
	return root
}

func fprintf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
