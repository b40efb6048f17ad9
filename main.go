package main

import "github.com/Digital-Shane/like-that/internal/cmd"

func main() {
	cmd.Execute()
}
