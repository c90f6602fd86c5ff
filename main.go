package main

import "thoreinstein.com/twm/cmd"

func main() {
	cmd.Execute()
}
