// Command hexglinfo inspects the OpenGL driver through hexgl.
//
// Usage:
//
//	hexglinfo platforms
//	hexglinfo formats [--all] [--manual --min-depth-bits 24]
//	hexglinfo info [--resolve-all] [--extensions]
//	hexglinfo signatures [--filter NAME]
//	hexglinfo shader FILE [--glsl 330] [--entry NAME] [--compile]
//
// Every command accepts -o table|json|yaml. Settings are read from
// ./hexgl.yaml, HEXGL_* environment variables and flags, in that order.
package main

import (
	"os"

	"github.com/kael-ip/hexgl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
