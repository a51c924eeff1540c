package main

import "github.com/powder-labs/srsprofile/cmd"

func main() {
	cmd.Execute()
}
