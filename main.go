package main

import (
	"db-inventory/cmd"
)

func main() {
	cmd.Execute()
}
