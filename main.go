package main

import "data-correlator/cmd"

func main() {
	cmd.Execute()
}
