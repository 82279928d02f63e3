package main

import "github.com/iksnae/mosje-chat/cmd"

func main() {
	cmd.Execute()
}
