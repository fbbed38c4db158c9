package main

import "github.com/ecoledger/ecoledger/internal/cli"

func main() {
	cli.Execute()
}
