package main

import (
	"os"

	"unibin/cmd"
)

func main() {
	if len(os.Args) == 1 && os.Getenv("GITHUB_ACTIONS") == "true" {
		os.Args = append(os.Args, "action")
	}
	cmd.Execute()
}
