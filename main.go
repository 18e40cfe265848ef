package main

import "github.com/MJE43/roulette-neighbors/internal/cli"

func main() {
	cli.Main()
}
