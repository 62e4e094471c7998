package main

import "github.com/tokenized/voting-contract/cmd/votingcontract/cmd"

// Voting Contract CLI
//
func main() {
	cmd.Execute()
}
