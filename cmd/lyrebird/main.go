package main

import "github.com/RomanHargrave/lyrebird/internal/cli"

func main() {
	cli.Execute()
}
