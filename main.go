package main

import "github.com/nikogura/interview-roadmap/cmd"

func main() {
	cmd.Execute()
}
