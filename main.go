// Package main is the entry point for the lolmatches CLI tool, which loads
// League of Legends match records and lets an operator filter, aggregate and
// export them.
package main

import "github.com/pable/go-lol-matches/cmd"

func main() {
	cmd.Execute()
}
