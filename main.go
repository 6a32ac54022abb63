package main

import "github.com/encodeous/ffscan/cmd"

func main() {
	cmd.Execute()
}
