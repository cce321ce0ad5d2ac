package main

import "github.com/brocaar/chirpstack-device-region/cmd/chirpstack-device-region/cmd"

var version string // set by the compiler

func main() {
	cmd.Execute(version)
}
