// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/fluxstream/fluxstream/color"
	"github.com/fluxstream/fluxstream/constant"
	"github.com/fluxstream/fluxstream/key"
	"github.com/fluxstream/fluxstream/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Fluxstream + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.SourcesExcluded, []string{}, "Sources to skip during resolution.\nComma separated ids, matched exactly. Unknown ids are ignored\nType \"fluxstream sources list\" to show available sources")
	register(key.ResolveDeadline, "15s", "Overall time budget for one resolution.\nSources still running when it passes are dropped from the answer")
	register(key.ResolveSourceTimeout, "0s", "Time budget for a single source. 0s disables it")
	register(key.SlugMaxDistance, -1, "Largest edit distance accepted when matching a title against site search results.\nNegative value accepts the closest match whatever its distance")
	register(key.MetadataTMDBAPIKey, "", "TMDB API key used to turn IMDb ids into titles.\nFalls back to the key stored by \"fluxstream tmdb login\"")
	register(key.MetadataTMDBBaseURL, "https://api.themoviedb.org/3", "TMDB API base URL")
	register(key.MetadataIMDbFallback, true, "Read the title from the IMDb page when TMDB does not know the id")
	register(key.MetadataCacheTTL, "48h", "How long resolved titles stay cached")
	register(key.NetworkTimeout, "30s", "Timeout of a single HTTP request")
	register(key.NetworkCacheTTL, "10m", "How long fetched pages stay cached. 0s disables the page cache")
	register(key.NetworkRatePerHost, 0, "Maximum requests per second sent to a single host. 0 disables rate limiting")
	register(key.NetworkTLSFingerprint, false, "Present a Chrome TLS fingerprint to upstream sites")
	register(key.NetworkUserAgent, constant.UserAgent, "User-Agent header sent to upstream sites")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
