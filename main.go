package main

import "github.com/sadopc/mesai/internal/cli"

func main() {
	cli.Execute()
}
