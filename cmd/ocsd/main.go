/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/ocsd-project/ocsd/cmd/ocsd/cmd"

func main() {
	cmd.Execute()
}
