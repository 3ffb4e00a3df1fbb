package source

import (
	"github.com/fluxstream/fluxstream/id"
	"github.com/samber/lo"
)

// CountryCode tags the audience of a site. Multi marks sites that are not locale specific.
type CountryCode string

const (
	Multi CountryCode = "multi"
	EN    CountryCode = "en"
	DE    CountryCode = "de"
	ES    CountryCode = "es"
	FR    CountryCode = "fr"
	IT    CountryCode = "it"
	MX    CountryCode = "mx"
)

// Info is the static description of a source.
type Info struct {
	// ID is unique across the registry. It is the source half of an event id
	// and the value matched by the exclusion list.
	ID           string           `json:"id"`
	Label        string           `json:"label"`
	ContentTypes []id.ContentType `json:"contentTypes"`
	Countries    []CountryCode    `json:"countries"`
	BaseURL      string           `json:"baseUrl"`
}

// Supports reports whether the source serves content of type ct.
func (i Info) Supports(ct id.ContentType) bool {
	return lo.Contains(i.ContentTypes, ct)
}

// Serves reports whether the source is tagged with country.
func (i Info) Serves(country CountryCode) bool {
	return lo.Contains(i.Countries, country)
}
