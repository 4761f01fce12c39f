package main

import "capitol/constellation/cmd"

func main() {
	cmd.Execute()
}
