package main

import "github.com/hrzp/dayforge/cmd/dayforge/root"

func main() {
	root.Execute()
}
