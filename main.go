// Package main is the entry point of fluxstream.
package main

import (
	"github.com/fluxstream/fluxstream/cmd"
	"github.com/fluxstream/fluxstream/config"
	"github.com/fluxstream/fluxstream/internal/cache"
	"github.com/fluxstream/fluxstream/key"
	"github.com/fluxstream/fluxstream/log"
	"github.com/fluxstream/fluxstream/where"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go cache.New(where.Pages(), viper.GetDuration(key.NetworkCacheTTL)).CollectGarbage()

	cmd.Execute()
}
