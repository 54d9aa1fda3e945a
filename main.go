package main

import "github.com/brogergvhs/bascrape/cmd"

func main() {
	cmd.Execute()
}
