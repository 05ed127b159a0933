package main

import "doll-web/cmd"

func main() {
	cmd.Execute()
}
