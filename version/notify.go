package version

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fluxstream/fluxstream/color"
	"github.com/fluxstream/fluxstream/constant"
	"github.com/fluxstream/fluxstream/icon"
	"github.com/fluxstream/fluxstream/key"
	"github.com/fluxstream/fluxstream/network"
	"github.com/fluxstream/fluxstream/style"
	"github.com/fluxstream/fluxstream/util"
	"github.com/spf13/viper"
)

// Notify writes a notice to out when a newer release than the running one exists.
func Notify(out io.Writer, fetcher network.Fetcher) {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	latest, err := Latest(ctx, fetcher)
	erase()
	if err != nil {
		return
	}

	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	_, _ = fmt.Fprintf(out, `
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/"+constant.Repository+"/releases/tag/v"+latest),
	)
}
