//go:build cli
// +build cli

package main

import (
	_ "sixgo.GO/custom"

	"sixgo.GO/cmd"
	"sixgo.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
