package main

import "github.com/dzjyyds666/iq/cmd"

func main() {
	cmd.Execute()
}
