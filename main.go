package main

import "github.com/xrsl/blogx/cmd"

func main() {
	cmd.Execute()
}
