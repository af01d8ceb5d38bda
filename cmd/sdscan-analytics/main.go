package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/WangYihang/sdscan-analytics/pkg/common"
	"github.com/WangYihang/sdscan-analytics/pkg/interface/cli"
)

func main() {
	// Parse command line flags
	config, err := cli.ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if config.Version {
		fmt.Println(common.PV.String())
		return
	}

	// Create assembler
	assembler := cli.NewAssembler(config)
	assembler.Logger().Debug("starting", "build", common.PV)

	// Assemble use case with all dependencies
	useCase, err := assembler.AssembleUseCase()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Setup context cancelled on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := useCase.Execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			assembler.Logger().Warn("interrupted")
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
