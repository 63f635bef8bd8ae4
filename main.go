// Package main is the entry point of the sdphc CLI.
package main

import (
	"github.com/sdphc/sdphc/cmd"
	"github.com/sdphc/sdphc/internal/contract"
	"github.com/sdphc/sdphc/internal/iocache"
)

func main() {
	cmd.SetStoreManager(iocache.Manager)
	err := cmd.Execute()
	iocache.CloseStores()
	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
