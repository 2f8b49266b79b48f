package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/GiovannaDuccini08/Sistema-CRUD/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	go func() {
		// a second Ctrl-C kills the process the default way
		<-ctx.Done()
		stop()
	}()

	code := cli.Execute(ctx)
	stop()
	os.Exit(code)
}
