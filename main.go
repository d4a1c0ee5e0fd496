package main

import "github.com/kamusis/sentiment-cli/cmd"

func main() {
	cmd.Execute()
}
