package main

import "github.com/icco/pianoviz/cmd"

func main() {
	cmd.Execute()
}
