package main

import "github.com/rehydrate-io/rehydrate/cmd"

func main() {
	cmd.Execute()
}
