package main

import "github.com/mouse-blink/resub/cmd"

func main() {
	cmd.Execute()
}
