package main

import "choiceLists/cmd"

func main() {
	cmd.Execute()
}
