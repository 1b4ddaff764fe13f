package main

import "github.com/policyaudit/policyaudit/cmd"

func main() {
	cmd.Execute()
}
