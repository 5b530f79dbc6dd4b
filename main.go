package main

import "github.com/KaramelBytes/drawstats-cli/cmd"

func main() {
	cmd.Execute()
}
