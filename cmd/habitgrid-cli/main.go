package main

import "habitgrid/cmd/habitgrid-cli/cmd"

func main() {
	cmd.Execute()
}
