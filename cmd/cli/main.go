package main

import (
	"github.com/seaquill/battleship-go/internal/cli"
)

func main() {
	cli.Execute()
}
