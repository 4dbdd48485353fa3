package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/coinbacked/coinbacked/cbgo/cmd"
	"github.com/coinbacked/coinbacked/cbgo/fault"
)

func main() {
	app := cli.NewApp()
	app.Name = "coinbacked"
	app.Usage = "Backed token reserve tool"
	app.Description = "Encode, decode and simulate instructions of the backed token reserve program, and inspect live reserves"
	app.Commands = []*cli.Command{
		cmd.EncodeCommand,
		cmd.DecodeCommand,
		cmd.DeriveCommand,
		cmd.PayoutCommand,
		cmd.SimulateCommand,
		cmd.InspectCommand,
	}
	ctx, cancel := context.WithCancel(context.Background())

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		for {
			<-c
			cancel()
			fmt.Println("\r\nExiting...")
		}
	}()

	err := app.RunContext(ctx, os.Args)
	if err != nil {
		if errors.Is(err, ctx.Err()) {
			_, _ = fmt.Fprintf(os.Stderr, "command interrupted")
			os.Exit(130)
		} else {
			_, _ = fmt.Fprintf(os.Stderr, "error (%s): %v\n", fault.Code(err), err)
			os.Exit(1)
		}
	}
}
