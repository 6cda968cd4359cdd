package main

import (
	"fmt"
	"os"

	"github.com/anywherelan/resextract/cli"
	"github.com/anywherelan/resextract/embeds"
)

func main() {
	err := cli.New(embeds.Module()).Run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR resextract: %v\n", err)
		os.Exit(1)
	}
}
