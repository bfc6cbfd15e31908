package main

import "github.com/hireflow/interview-agent/internal/cli"

func main() {
	cli.Execute()
}
