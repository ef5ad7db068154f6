package main

import "github.com/berth-dev/rollcall/internal/cli"

func main() {
	cli.Execute()
}
