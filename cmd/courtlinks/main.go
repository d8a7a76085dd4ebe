package main

import (
	"courtlinks/cmd/courtlinks/commands"
	"courtlinks/lib/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
