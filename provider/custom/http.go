package custom

import (
	"context"
	"errors"
	"net/url"

	"github.com/fluxstream/fluxstream/network"
	lua "github.com/yuin/gopher-lua"
)

// httpModule is the global through which scripts fetch pages.
//
//	http_tls.get(url [, headers])      -> body
//	http_tls.request({url, headers})   -> { status = ..., body = ... }
//
// Requests go through the application's fetcher, so they share its
// page cache, rate limit and TLS fingerprint.
const httpModule = "http_tls"

func registerHTTP(L *lua.LState, fetcher network.Fetcher) {
	mod := L.NewTable()
	L.SetField(mod, "get", L.NewFunction(func(L *lua.LState) int {
		u := L.CheckString(1)
		body, err := fetch(L, fetcher, u, L.OptTable(2, nil))
		if err != nil {
			L.RaiseError("%s.get: %s", httpModule, err.Error())
			return 0
		}

		L.Push(lua.LString(body))
		return 1
	}))

	L.SetField(mod, "request", L.NewFunction(func(L *lua.LState) int {
		opts := L.CheckTable(1)
		u := getString(opts, "url")
		if u == "" {
			L.ArgError(1, "url is required")
			return 0
		}

		headers, _ := opts.RawGetString("headers").(*lua.LTable)

		response := L.NewTable()
		body, err := fetch(L, fetcher, u, headers)
		if err != nil {
			var netErr *network.Error
			if !errors.As(err, &netErr) || netErr.Status == 0 {
				L.RaiseError("%s.request: %s", httpModule, err.Error())
				return 0
			}

			response.RawSetString("status", lua.LNumber(netErr.Status))
			response.RawSetString("body", lua.LString(""))
		} else {
			response.RawSetString("status", lua.LNumber(200))
			response.RawSetString("body", lua.LString(body))
		}

		L.Push(response)
		return 1
	}))

	L.SetGlobal(httpModule, mod)
}

func fetch(L *lua.LState, fetcher network.Fetcher, raw string, headers *lua.LTable) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	var opts []network.Option
	if headers != nil {
		headers.ForEach(func(k, v lua.LValue) {
			opts = append(opts, network.WithHeader(k.String(), v.String()))
		})
	}

	ctx := L.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return fetcher.Text(ctx, u, opts...)
}
