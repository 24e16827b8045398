package main

import "github.com/piwi3910/DoorCraft/internal/cli"

func main() {
	cli.Execute()
}
