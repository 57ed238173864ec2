package main

import "github.com/synternet/launchpad-indexer/cmd"

func main() {
	cmd.Execute()
}
