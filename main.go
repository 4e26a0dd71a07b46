package main

import (
	"log"

	"github.com/wormhole-foundation/example-liquidity-layer-sub002/cmd"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		log.Fatalf("failed to execute root command: %v", err)
	}
}
