package inline

import (
	"encoding/json"

	"github.com/fluxstream/fluxstream/aggregate"
	"github.com/fluxstream/fluxstream/id"
	"github.com/fluxstream/fluxstream/source"
)

type Output struct {
	Type id.ContentType `json:"type"`
	// ID is the identifier as requested.
	ID string `json:"id"`
	// Complete is false when some sources missed the deadline.
	Complete bool     `json:"complete"`
	Pending  []string `json:"pending"`
	// ElapsedMs is the wall time of the request in milliseconds.
	ElapsedMs int64            `json:"elapsedMs"`
	Streams   []*source.Result `json:"streams"`
}

func asJson(options *Options, outcome aggregate.Outcome, streams []*source.Result) ([]byte, error) {
	if streams == nil {
		streams = []*source.Result{}
	}

	pending := outcome.Pending
	if pending == nil {
		pending = []string{}
	}

	return json.Marshal(&Output{
		Type:      options.Type,
		ID:        options.RawID,
		Complete:  outcome.Complete,
		Pending:   pending,
		ElapsedMs: outcome.Elapsed.Milliseconds(),
		Streams:   streams,
	})
}

