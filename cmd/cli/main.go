package main

import (
	"github.com/mveale/worddragon/internal/cli"
)

func main() {
	cli.Execute()
}
