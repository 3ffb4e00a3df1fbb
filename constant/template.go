// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

// Lua source entry points. SearchEvents and EventStreams are required, the rest are optional globals.
const (
	SearchEventsFn  = "SearchEvents"
	EventStreamsFn  = "EventStreams"
	BaseURLVar      = "BaseURL"
	LabelVar        = "Label"
	ContentTypesVar = "ContentTypes"
	CountriesVar    = "Countries"
	SlugSuffixVar   = "SlugSuffix"
)

// SourceTemplate is a Go text/template for scaffolding new Lua source files.
const SourceTemplate = `{{ $divider := repeat "-" (plus (max (len .URL) (len .Name) (len .Author) 3) 12) }}{{ $divider }}
-- @name    {{ .Name }}
-- @url     {{ .URL }}
-- @author  {{ .Author }}
-- @license MIT
{{ $divider }}


---@alias event { title: string, href: string }
---@alias stream { url: string, title: string|nil }


----- IMPORTS -----
local html = require("html")
--- END IMPORTS ---



----- VARIABLES -----
{{ .BaseURLVar }} = "{{ .URL }}"
{{ .LabelVar }} = "{{ .Name }}"
{{ .ContentTypesVar }} = { "tv" }
{{ .CountriesVar }} = { "multi" }
--- END VARIABLES ---



----- MAIN -----

--- Searches the site for events matching the keyword.
-- @param keyword string Title to search for
-- @return event[] Table of candidate events
function {{ .SearchEventsFn }}(keyword)
	return {}
end


--- Lists the playable streams of one event page.
-- @param slug string Site-relative event slug
-- @return stream[] Table of streams
function {{ .EventStreamsFn }}(slug)
	return {}
end


--- END MAIN ---

-- ex: ts=4 sw=4 et filetype=lua
`
