package main

import "mangareader/cmd/cli/command"

func main() {
	command.Execute()
}
