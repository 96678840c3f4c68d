package main

import "github.com/deploymenttheory/go-udisks/cmd"

func main() {
	cmd.Execute()
}
