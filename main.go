package main

import "github.com/jsphweid/beamline/cmd"

func main() {
	cmd.Execute()
}
