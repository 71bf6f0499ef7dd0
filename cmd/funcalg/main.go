// Command funcalg evaluates and differentiates function trees from the
// command line and serves the funcalg tool interface over HTTP.
//
// Usage:
//
//	funcalg serve --addr :8080 [--config server.yaml]
//	funcalg eval  --file f.yaml --x 0.5,1,2 [--order 2] [--simplify]
//	funcalg eval  --file f.json --from 0 --to 1 --steps 100
//	funcalg spec
package main

import (
	"context"
	goflag "flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/njchilds90/funcalg"
)

func main() {
	klog.InitFlags(nil)
	defer klog.Flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand(os.Stdout)
	cmd.PersistentFlags().AddGoFlagSet(goflag.CommandLine)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		klog.Flush()
		os.Exit(1)
	}
}

func newRootCommand(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "funcalg",
		Short:         "Evaluate and differentiate one-variable function trees",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.AddCommand(newServeCommand(), newEvalCommand(), newSpecCommand())
	return cmd
}

func newServeCommand() *cobra.Command {
	var (
		configPath string
		addr       string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tool interface over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadServerConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	addFlags(cmd.Flags(), &configPath, &addr)
	return cmd
}

func addFlags(fs *pflag.FlagSet, configPath, addr *string) {
	fs.StringVar(configPath, "config", "", "YAML server configuration file")
	fs.StringVar(addr, "addr", DefaultServerConfig().Addr, "Address to listen on (overrides the config file)")
}

func newSpecCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "spec",
		Short: "Print the JSON schema of the tool interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), funcalg.ToolSpec())
			return err
		},
	}
}
