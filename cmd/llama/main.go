package main

import (
	"context"
	"os"

	"github.com/computerscienceiscool/llama-cli/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background(), os.Args[1:], cli.Options{}))
}
