package main

import "github.com/vocabloom/vocabloom/cmd"

func main() {
	cmd.Execute()
}
