package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// env is the environment lookup used by commands. Tests replace it.
type env func(string) (string, bool)

// NewRootCommand builds the printmock command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	return newRootCommand(info, os.LookupEnv)
}

func newRootCommand(info BuildInfo, lookup env) *cobra.Command {
	serve := newServeCommand(lookup)

	root := &cobra.Command{
		Use:   "printmock",
		Short: "printmock is a local mock of the Slant3D printing API",
		Long: `printmock serves a stand-in for the Slant3D order API: quotes, slicing,
orders, tracking and webhook subscriptions, backed by in-memory storage.

Configuration can be provided via a YAML file, PRINTMOCK_* environment
variables, or flags. Running printmock without a command starts the server.`,
		Version:       info.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          serve.RunE,
	}
	root.Flags().AddFlagSet(serve.Flags())
	root.SetVersionTemplate("printmock {{.Version}}\n")

	root.AddCommand(serve, newConfigCommand(lookup), newVersionCommand(info))
	return root
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context, info BuildInfo, args []string, stderr io.Writer) int {
	root := NewRootCommand(info)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
