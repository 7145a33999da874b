package main

import "lunchero/cmd"

func main() {
	cmd.Execute()
}
