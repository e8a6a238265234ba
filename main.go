package main

import "github.com/kasuboski/rawz/cmd"

func main() {
	cmd.Execute()
}
