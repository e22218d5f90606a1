package main

import (
	"github.com/Harshhrajj/Logfile-analyzer/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		cli.Fatal(err)
	}
}
