package main

import "querytrack/cmd/client/cmd"

func main() {
	cmd.Execute()
}
