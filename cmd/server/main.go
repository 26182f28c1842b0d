package main

import "github.com/iliyamo/ticket-booking-api/cmd/server/commands"

func main() {
	commands.Execute()
}
