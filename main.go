package main

import "github.com/widyatama/shift-management/cmd"

func main() {
	cmd.Execute()
}
