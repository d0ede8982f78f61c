// Copyright 2025 walteh LLC
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
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/gocp/pkg/log"
	"github.com/walteh/gocp/pkg/operation"
	"github.com/walteh/gocp/pkg/prompt"
)

const (
	exitOK      = 0
	exitFailure = 1
)

// rootFlags are the parsed command line flags
type rootFlags struct {
	recursive   bool
	verbose     bool
	interactive bool
	exclude     []string
	debug       bool
}

// 🏃 run executes gocp with args and returns the process exit code. Every
// failure, whether a rejected invocation or an I/O error, maps to exitFailure.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdin, stdout, stderr)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		log.New(stdout, stderr, *zerolog.Ctx(ctx)).Error(err)
		return exitFailure
	}
	return exitOK
}

// 🌱 newRootCmd creates the gocp command bound to the given streams
func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "gocp [flags] <source> <destination>",
		Short: "Copy files and directories",
		Long: `gocp copies a file, or with -r a directory tree, to a destination.

Destination files are replaced in one step, so an interrupted copy never
leaves a half-written file behind. Directory copies only add and overwrite;
nothing that exists solely at the destination is removed.`,
		Example: `  gocp notes.txt backup/notes.txt
  gocp -rv project/ /mnt/backup/project
  gocp -ri -x '*.log' -x node_modules src/ dst/`,
		Args:          cobra.ExactArgs(2),
		Version:       readBuildInfo().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), stderr, flags.debug)
			logger := zerolog.Ctx(ctx)

			opts := operation.Options{
				Source:      args[0],
				Destination: args[1],
				Recursive:   flags.recursive,
				Verbose:     flags.verbose,
				Interactive: flags.interactive,
				Exclude:     flags.exclude,
			}

			copier, err := operation.New(opts, operation.Env{
				Fs:        afero.NewOsFs(),
				Confirmer: prompt.NewLinePrompter(stdin, stdout),
				Console:   log.New(stdout, stderr, *logger),
			})
			if err != nil {
				return err
			}

			outcome, err := copier.Run(ctx)
			logger.Debug().Str("outcome", outcome.String()).Msg("done")
			return err
		},
	}

	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate(versionTemplate(readBuildInfo()))

	addRootFlags(cmd, flags)
	return cmd
}

// addRootFlags binds the command line flags to flags
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.Flags().BoolVarP(&flags.recursive, "recursive", "r", false, "copy directories recursively")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "print a line for every file and directory copied")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "prompt before overwriting existing files")
	cmd.Flags().StringArrayVarP(&flags.exclude, "exclude", "x", nil, "skip entries matching a glob pattern during -r copies (repeatable)")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "enable debug logging on stderr")
}

// setupLogging returns ctx carrying a zerolog logger on w, at debug level if requested
func setupLogging(ctx context.Context, w io.Writer, debug bool) context.Context {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}
