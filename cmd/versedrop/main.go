package main

import "github.com/sraja/versedrop/internal/cli"

func main() {
	cli.Execute()
}
