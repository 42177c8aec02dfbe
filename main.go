package main

import "idealauncher/internal/cli"

func main() {
	cli.Execute()
}
