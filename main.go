package main

import "github.com/llehouerou/culturedeck/internal/cli"

func main() {
	cli.Execute()
}
