package main

import "github.com/findyourpeers/peers/internal/cli"

func main() {
	cli.Execute()
}
