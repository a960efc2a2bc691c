package main

import (
	"os"

	"github.com/thushan/llmsource/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
