package main

import "notes-service/cmd/server/cmd"

func main() {
	cmd.Execute()
}
