package main

import "github.com/naka-gawa/itunes-app-reviews/cmd"

func main() {
	cmd.Execute()
}
