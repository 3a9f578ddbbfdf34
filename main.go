package main

import "github.com/mikesmitty/psychart/cmd"

func main() {
	cmd.Execute()
}
