package main

import "github.com/llehouerou/tilt/internal/cli"

func main() {
	cli.Execute()
}
