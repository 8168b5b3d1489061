package main

import "github.com/backbone81/storage-kernel/cmd/kernel-cli/cmd"

func main() {
	cmd.Execute()
}
