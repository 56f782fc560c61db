package main

import "github.com/lepinkainen/tablestore/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
