// Package inline implements the non-interactive mode: resolve one identifier
// and print the streams found.
package inline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fluxstream/fluxstream/aggregate"
	"github.com/fluxstream/fluxstream/id"
	"github.com/fluxstream/fluxstream/log"
	"github.com/fluxstream/fluxstream/source"
	"github.com/fluxstream/fluxstream/util"
)

// Run resolves options.RawID and writes the streams to options.Out, either as
// one URL per line or as a JSON Output.
// Source failures never surface here; they only leave the result shorter.
func Run(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	identifier, err := id.Parse(options.Type, options.RawID)
	if err != nil {
		return err
	}

	outcome := options.Resolver.Resolve(ctx, options.Type, identifier)
	log.Infof("%s: %s in %s", identifier, util.Quantify(len(outcome.Results), "stream", "streams"), outcome.Elapsed)

	streams := outcome.Results
	if filter, ok := options.StreamsFilter.Get(); ok {
		streams = filter(streams)
	}

	if options.Json {
		err = writeJson(options.Out, options, outcome, streams)
	} else {
		err = writePlain(options.Out, streams)
	}
	if err != nil {
		return err
	}

	if open, ok := options.Open.Get(); ok && len(streams) > 0 {
		log.Infof("opening %s", streams[0].URL)
		return open(streams[0].URL)
	}

	return nil
}

func writePlain(out io.Writer, streams []*source.Result) error {
	for _, stream := range streams {
		if _, err := fmt.Fprintln(out, stream.URL); err != nil {
			return err
		}
	}
	return nil
}

func writeJson(out io.Writer, options *Options, outcome aggregate.Outcome, streams []*source.Result) error {
	data, err := asJson(options, outcome, streams)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
