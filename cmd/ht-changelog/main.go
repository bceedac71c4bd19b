package main

import (
	"os"

	"github.com/ht-tools/commitlog/internal/cli"
)

func main() {
	os.Exit(cli.ExecuteChangelog())
}
