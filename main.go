// pydockerize main entrypoint
//
// Writes Dockerfiles for a Python app, builds them with docker (or podman),
// lists the resulting images and runs them. Steps chain on one command line:
//
//	pydockerize -t myapp generate build run
//
// Keep this file simple: local overrides, then hand off to the command tree.

package main

import (
	"github.com/joho/godotenv"

	"pydockerize/internal/cli"
)

func main() {
	// Local overrides for PYDOCKERIZE_* settings; missing file is fine.
	_ = godotenv.Load(".pydockerize.env")

	cli.Execute()
}
