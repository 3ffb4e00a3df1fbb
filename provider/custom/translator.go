package custom

import (
	"errors"
	"net/url"
	"strings"

	"github.com/fluxstream/fluxstream/slug"
	"github.com/samber/lo"
	lua "github.com/yuin/gopher-lua"
)

func getString(table *lua.LTable, key string) string {
	val := table.RawGetString(key)
	if val.Type() == lua.LTString {
		return strings.TrimSpace(val.String())
	}
	return ""
}

// getStringList accepts either a comma separated string or an array of strings.
func getStringList(table *lua.LTable, key string) []string {
	val := table.RawGetString(key)
	if val.Type() == lua.LTString {
		return lo.Compact(lo.Map(strings.Split(val.String(), ","), func(s string, _ int) string {
			return strings.TrimSpace(s)
		}))
	}
	if val.Type() == lua.LTTable {
		var list []string
		val.(*lua.LTable).ForEach(func(_, v lua.LValue) {
			if v.Type() == lua.LTString {
				list = append(list, v.String())
			}
		})
		return list
	}
	return nil
}

// forEachEntry visits the array part of table in order, skipping non-table values.
// i is the 1-based Lua index.
func forEachEntry(table *lua.LTable, fn func(i int, entry *lua.LTable)) {
	for i := 1; i <= table.Len(); i++ {
		if entry, ok := table.RawGetInt(i).(*lua.LTable); ok {
			fn(i, entry)
		}
	}
}

func candidateFromTable(table *lua.LTable) (slug.Candidate, error) {
	href := getString(table, "href")
	if href == "" {
		return slug.Candidate{}, errors.New("event must have href")
	}

	return slug.Candidate{Href: href, Title: getString(table, "title")}, nil
}

type stream struct {
	URL   string
	Title string
}

// streamFromTable reads a stream entry, resolving relative URLs against base.
func streamFromTable(table *lua.LTable, base *url.URL) (stream, error) {
	raw := getString(table, "url")
	if raw == "" {
		return stream{}, errors.New("stream must have url")
	}

	u, err := base.Parse(raw)
	if err != nil {
		return stream{}, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return stream{}, errors.New("stream url must be http(s): " + raw)
	}

	return stream{URL: u.String(), Title: getString(table, "title")}, nil
}
