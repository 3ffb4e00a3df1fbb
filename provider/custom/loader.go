// Package custom runs user supplied Lua scripts as sources.
//
// A script defines two global functions:
//
//	SearchEvents(keyword) -> { { title = "...", href = "..." }, ... }
//	EventStreams(slug)    -> { { url = "...", title = "..." }, ... }
//
// and may set the globals BaseURL, Label, ContentTypes, Countries and SlugSuffix.
// Scripts reach the network through the http_tls module, which shares the
// application's fetcher, and may use every module of mangal-lua-libs.
package custom

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fluxstream/fluxstream/constant"
	"github.com/fluxstream/fluxstream/id"
	"github.com/fluxstream/fluxstream/internal/scraper"
	"github.com/fluxstream/fluxstream/network"
	"github.com/fluxstream/fluxstream/source"
	"github.com/fluxstream/fluxstream/util"
	libs "github.com/metafates/mangal-lua-libs"
	"github.com/samber/lo"
	"github.com/samber/mo"
	lua "github.com/yuin/gopher-lua"
)

// Extension of custom source scripts.
const Extension = ".lua"

// IDFromName derives the source id of the script named name.
func IDFromName(name string) string {
	return util.SanitizeFilename(strings.ToLower(name))
}

// Options are the collaborators shared with every script.
type Options struct {
	Fetcher     network.Fetcher
	Titles      source.Titles
	Locale      string
	MaxDistance mo.Option[int]
}

// Load compiles and runs the script at path and validates its entry points.
func Load(path string, opts Options) (*Source, error) {
	state := lua.NewState()
	libs.Preload(state)
	registerHTTP(state, opts.Fetcher)

	if err := scraper.Load(state, path); err != nil {
		state.Close()
		return nil, err
	}

	name := util.FileStem(path)
	for _, fn := range []string{constant.SearchEventsFn, constant.EventStreamsFn} {
		if state.GetGlobal(fn).Type() != lua.LTFunction {
			state.Close()
			return nil, fmt.Errorf("function %s is required but not defined in %s", fn, name)
		}
	}

	info, err := infoFromGlobals(state, name)
	if err != nil {
		state.Close()
		return nil, err
	}

	return newSource(info, state, opts), nil
}

func infoFromGlobals(state *lua.LState, name string) (source.Info, error) {
	info := source.Info{
		ID:           IDFromName(name),
		Label:        name,
		ContentTypes: []id.ContentType{id.Movie, id.Series},
		Countries:    []source.CountryCode{source.Multi},
	}

	if label, ok := state.GetGlobal(constant.LabelVar).(lua.LString); ok && label != "" {
		info.Label = string(label)
	}

	base, ok := state.GetGlobal(constant.BaseURLVar).(lua.LString)
	if !ok || base == "" {
		return source.Info{}, fmt.Errorf("global %s is required but not defined in %s", constant.BaseURLVar, name)
	}
	if u, err := url.Parse(string(base)); err != nil || !u.IsAbs() {
		return source.Info{}, fmt.Errorf("%s of %s must be an absolute URL, got %q", constant.BaseURLVar, name, base)
	}
	info.BaseURL = string(base)

	if types := listGlobal(state, constant.ContentTypesVar); len(types) > 0 {
		var parsed []id.ContentType
		for _, raw := range types {
			ct, err := id.ParseContentType(raw)
			if err != nil {
				return source.Info{}, fmt.Errorf("%s of %s: %w", constant.ContentTypesVar, name, err)
			}
			parsed = append(parsed, ct)
		}
		info.ContentTypes = lo.Uniq(parsed)
	}

	if countries := listGlobal(state, constant.CountriesVar); len(countries) > 0 {
		info.Countries = lo.Map(countries, func(c string, _ int) source.CountryCode {
			return source.CountryCode(strings.ToLower(c))
		})
	}

	return info, nil
}

func listGlobal(state *lua.LState, name string) []string {
	holder := state.NewTable()
	holder.RawSetString(name, state.GetGlobal(name))
	return getStringList(holder, name)
}
