package main

import "github.com/hoppxi/wigo-calc/internal/cmd"

func main() {
	cmd.Execute()
}
