// Package icon renders status symbols in the variant chosen by icons.variant:
// emoji, nerd-font glyphs, plain ASCII, kaomoji or Unicode squares.
package icon

import (
	"github.com/fluxstream/fluxstream/key"
	"github.com/spf13/viper"
)

// Visual Variant Constants - these define the supported aesthetic styles for icon rendering.
const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// iconDef encapsulates the visual representations of a single UI symbol across all supported variants.
type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

// Get retrieves the visual representation for the receiver Def based on the global icons variant configuration.
func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get returns the rendered string for a specified Icon identifier from the global registry.
func Get(i Icon) string {
	return icons[i].Get()
}

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota + 1
	Fail
	Warn
	Progress
	Lua
	Go
	Stream
	Pending
)

var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "🎉",
		nerd:    "\uf00c",
		plain:   "✓",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "👹",
		nerd:    "\uf00d",
		plain:   "✗",
		kaomoji: "(×﹏×)",
		squares: "🟥",
	},
	Warn: {
		emoji:   "⚠️",
		nerd:    "\uf071",
		plain:   "!",
		kaomoji: "(・_・;)",
		squares: "🟨",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "\uf110",
		plain:   "...",
		kaomoji: "(＠_＠)",
		squares: "🟦",
	},
	Lua: {
		emoji:   "🌙",
		nerd:    "\ue620",
		plain:   "lua",
		kaomoji: "(◕‿◕)",
		squares: "🟪",
	},
	Go: {
		emoji:   "🐹",
		nerd:    "\ue626",
		plain:   "go",
		kaomoji: "(•̀ᴗ•́)",
		squares: "🟫",
	},
	Stream: {
		emoji:   "📺",
		nerd:    "\uf03d",
		plain:   ">",
		kaomoji: "(☞ﾟヮﾟ)☞",
		squares: "⬜",
	},
	Pending: {
		emoji:   "🐢",
		nerd:    "\uf017",
		plain:   "~",
		kaomoji: "(－_－) zzZ",
		squares: "⬛",
	},
}
