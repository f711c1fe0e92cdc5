package main

import "github.com/iksnae/stickyboard/cmd"

func main() {
	cmd.Execute()
}
