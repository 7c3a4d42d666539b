// Command antman sketches sequence files into a BIGSI index.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "antman",
		Short: "antman sketches sequences into a bitsliced signature index",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "antman.toml", "path to the antman config file")

	root.AddCommand(newSketchCmd())
	root.AddCommand(newInfoCmd())
	root.AddCommand(newStopCmd())
	root.AddCommand(newShrinkCmd())
	root.AddCommand(newDaemonCmd())
	return root
}
