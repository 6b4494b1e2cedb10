package main

import "catalog-exporter/cmd"

func main() {
	cmd.Execute()
}
