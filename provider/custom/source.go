package custom

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/fluxstream/fluxstream/constant"
	"github.com/fluxstream/fluxstream/id"
	"github.com/fluxstream/fluxstream/slug"
	"github.com/fluxstream/fluxstream/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
	lua "github.com/yuin/gopher-lua"
)

// Source is a Lua script acting as a source. Calls into the script are
// serialized because a Lua state is single threaded.
type Source struct {
	info   source.Info
	base   *url.URL
	suffix string
	opts   Options

	mu    sync.Mutex
	state *lua.LState
}

var _ source.Source = (*Source)(nil)

func newSource(info source.Info, state *lua.LState, opts Options) *Source {
	s := &Source{
		info:  info,
		base:  lo.Must(url.Parse(info.BaseURL)),
		opts:  opts,
		state: state,
	}

	if suffix, ok := state.GetGlobal(constant.SlugSuffixVar).(lua.LString); ok {
		s.suffix = string(suffix)
	}

	if s.opts.Locale == "" {
		s.opts.Locale = "en"
	}

	return s
}

func (s *Source) Info() source.Info {
	return s.info
}

// Close releases the Lua state.
func (s *Source) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Close()
}

func (s *Source) Scrape(ctx context.Context, _ id.ContentType, identifier id.ID) ([]*source.Result, error) {
	found, err := slug.ForID(ctx, s.info.ID, identifier, s.opts.Titles, s.opts.Locale, s)
	if err != nil {
		return nil, err
	}

	eventSlug, ok := found.Get()
	if !ok {
		return []*source.Result{}, nil
	}

	val, err := s.call(ctx, constant.EventStreamsFn, lua.LString(eventSlug))
	if err != nil {
		return nil, err
	}

	results := []*source.Result{}
	forEachEntry(val, func(i int, entry *lua.LTable) {
		stream, err := streamFromTable(entry, s.base)
		if err != nil {
			return
		}

		title := stream.Title
		if title == "" {
			title = fmt.Sprintf("Stream %d", i)
		}
		results = append(results, source.NewResult(s.info, stream.URL, title))
	})

	return results, nil
}

// Resolve searches the site through the script's SearchEvents.
func (s *Source) Resolve(ctx context.Context, keyword string) (mo.Option[string], error) {
	val, err := s.call(ctx, constant.SearchEventsFn, lua.LString(keyword))
	if err != nil {
		return mo.None[string](), err
	}

	var candidates []slug.Candidate
	forEachEntry(val, func(_ int, entry *lua.LTable) {
		if candidate, err := candidateFromTable(entry); err == nil {
			candidates = append(candidates, candidate)
		}
	})

	best, ok := slug.Best(candidates, keyword, s.opts.MaxDistance).Get()
	if !ok {
		return mo.None[string](), nil
	}

	return slug.FromHref(s.base, best.Href, s.suffix), nil
}

// call runs a global function with ctx attached to the state, so a cancelled
// request interrupts the script.
func (s *Source) call(ctx context.Context, fn string, args ...lua.LValue) (*lua.LTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.SetContext(ctx)
	defer s.state.RemoveContext()

	err := s.state.CallByParam(lua.P{
		Fn:      s.state.GetGlobal(fn),
		NRet:    1,
		Protect: true,
	}, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}

	ret := s.state.Get(-1)
	s.state.Pop(1)

	table, ok := ret.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%s returned %s, expected table", fn, ret.Type())
	}

	return table, nil
}
