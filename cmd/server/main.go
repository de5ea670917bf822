package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/xtding233/keno-backend/internal/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "keno",
		Short:         "Keno draw-and-settle engine: HTTP/gRPC server and table tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newSimulateCmd(), newRTPCmd())
	return root
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		logger.Fatal("Command failed", "err", err)
	}
}
