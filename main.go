package main

import "github.com/kohta/gotfs/cmd"

func main() {
	cmd.Execute()
}
