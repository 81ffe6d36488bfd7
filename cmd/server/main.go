package main

import "healthwatch/cmd/server/cmd"

func main() {
	cmd.Execute()
}
