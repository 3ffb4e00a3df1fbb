// Package scraper compiles and installs the Lua scripts behind custom sources.
package scraper

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/fluxstream/fluxstream/filesystem"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

// protos caches compiled scripts by path and modification time, so an edited
// script is recompiled while an unchanged one is parsed once per process.
var protos sync.Map

// Load runs the script at path in L.
func Load(L *lua.LState, path string) error {
	proto, err := Compile(path)
	if err != nil {
		return err
	}

	L.Push(L.NewFunctionFromProto(proto))
	return L.PCall(0, lua.MultRet, nil)
}

// Compile returns the bytecode of the script at path.
func Compile(path string) (*lua.FunctionProto, error) {
	info, err := filesystem.API().Stat(path)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("%s@%d", path, info.ModTime().UnixNano())
	if cached, ok := protos.Load(cacheKey); ok {
		return cached.(*lua.FunctionProto), nil
	}

	source, err := filesystem.API().ReadFile(path)
	if err != nil {
		return nil, err
	}

	chunk, err := parse.Parse(bytes.NewReader(source), path)
	if err != nil {
		return nil, err
	}

	proto, err := lua.Compile(chunk, path)
	if err != nil {
		return nil, err
	}

	protos.Store(cacheKey, proto)
	return proto, nil
}
