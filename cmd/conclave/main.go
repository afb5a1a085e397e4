package main

import (
	"conclave.io/conclave/cmd/conclave/cmd"
)

func main() {
	cmd.Execute()
}
