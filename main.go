package main

import "github.com/evisarw/visa-management/cmd"

func main() {
	cmd.Execute()
}
