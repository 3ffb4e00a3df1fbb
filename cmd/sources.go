package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/fluxstream/fluxstream/color"
	"github.com/fluxstream/fluxstream/constant"
	"github.com/fluxstream/fluxstream/filesystem"
	"github.com/fluxstream/fluxstream/icon"
	"github.com/fluxstream/fluxstream/id"
	"github.com/fluxstream/fluxstream/internal/scraper"
	"github.com/fluxstream/fluxstream/network"
	"github.com/fluxstream/fluxstream/provider"
	"github.com/fluxstream/fluxstream/provider/custom"
	"github.com/fluxstream/fluxstream/source"
	"github.com/fluxstream/fluxstream/style"
	"github.com/fluxstream/fluxstream/util"
	"github.com/fluxstream/fluxstream/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Manage built-in and custom sources",
}

func init() {
	sourcesCmd.AddCommand(sourcesListCmd)

	sourcesListCmd.Flags().BoolP("raw", "r", false, "Print only source ids, one per line")
	sourcesListCmd.Flags().BoolP("custom", "c", false, "Display only user-installed custom Lua sources")
	sourcesListCmd.Flags().BoolP("builtin", "b", false, "Display only built-in sources")
	sourcesListCmd.Flags().StringP("type", "t", "", "Display only sources serving this content type")
	sourcesListCmd.Flags().StringP("filter", "f", "", "Fuzzy filter on source id and name")

	sourcesListCmd.MarkFlagsMutuallyExclusive("custom", "builtin")
	sourcesListCmd.SetOut(os.Stdout)
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Display the source registry in order",
	Run: func(cmd *cobra.Command, args []string) {
		raw := lo.Must(cmd.Flags().GetBool("raw"))

		var providers []*provider.Provider
		switch {
		case lo.Must(cmd.Flags().GetBool("builtin")):
			providers = provider.Builtins()
		case lo.Must(cmd.Flags().GetBool("custom")):
			providers = provider.Customs()
		default:
			providers = provider.All()
		}

		providers = provider.Find(providers, lo.Must(cmd.Flags().GetString("filter")))

		var sources []source.Source
		excluded := excludedSources()
		deps := provider.DepsFromConfig()
		for _, p := range providers {
			src, err := p.CreateSource(deps)
			if err != nil {
				cmd.PrintErrf("%s %s: %v\n", icon.Get(icon.Fail), p.Name, err)
				continue
			}
			sources = append(sources, src)
		}

		if t := lo.Must(cmd.Flags().GetString("type")); t != "" {
			ct, err := id.ParseContentType(t)
			handleErr(err)
			sources = lo.Filter(sources, func(s source.Source, _ int) bool {
				return s.Info().Supports(ct)
			})
		}

		typeTag := style.Tag(color.White, color.Blue)
		countryTag := style.Tag(color.White, color.Purple)

		for _, src := range sources {
			info := src.Info()
			if raw {
				cmd.Println(info.ID)
				continue
			}

			kind := icon.Get(icon.Go)
			if _, ok := src.(*custom.Source); ok {
				kind = icon.Get(icon.Lua)
			}

			line := []string{kind, style.Bold(info.Label), style.Faint(info.ID)}
			for _, ct := range info.ContentTypes {
				line = append(line, typeTag(string(ct)))
			}
			for _, country := range info.Countries {
				line = append(line, countryTag(string(country)))
			}
			if lo.Contains(excluded, info.ID) {
				line = append(line, style.Fg(color.Red)("excluded"))
			}

			cmd.Println(strings.Join(line, " "))
		}
	},
}

func init() {
	sourcesCmd.AddCommand(sourcesRemoveCmd)

	sourcesRemoveCmd.Flags().StringArrayP("name", "n", []string{}, "Specify the name of the custom source(s) to uninstall")
	lo.Must0(sourcesRemoveCmd.RegisterFlagCompletionFunc("name", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(provider.Customs(), func(p *provider.Provider, _ int) string {
			return p.Name
		}), cobra.ShellCompDirectiveNoFileComp
	}))
}

var sourcesRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Uninstall custom Lua sources",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range lo.Must(cmd.Flags().GetStringArray("name")) {
			path := filepath.Join(where.Sources(), name+custom.Extension)
			handleErr(filesystem.API().Remove(path))
			fmt.Printf("%s successfully removed %s\n", icon.Get(icon.Success), style.Fg(color.Yellow)(name))
		}
	},
}

func init() {
	sourcesCmd.AddCommand(sourcesInstallCmd)

	sourcesInstallCmd.Flags().StringP("url", "u", "", "Raw URL of the Lua script")
	sourcesInstallCmd.Flags().StringP("name", "n", "", "Name to install the script as, defaults to the file name of the URL")
	lo.Must0(sourcesInstallCmd.MarkFlagRequired("url"))
}

var sourcesInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Download a Lua source, or update it when already installed",
	Run: func(cmd *cobra.Command, args []string) {
		remote, err := url.Parse(lo.Must(cmd.Flags().GetString("url")))
		handleErr(err)

		name := lo.Must(cmd.Flags().GetString("name"))
		if name == "" {
			name = util.FileStem(remote.Path)
		}
		if name == "" {
			handleErr(fmt.Errorf("cannot derive a name from %s, use --name", remote))
		}

		target := filepath.Join(where.Sources(), util.SanitizeFilename(name)+custom.Extension)

		erase := util.PrintErasable(fmt.Sprintf("%s Downloading %s...", icon.Get(icon.Progress), style.Fg(color.Yellow)(name)))
		changed, err := scraper.Install(context.Background(), network.FromConfig(), remote, target)
		erase()
		handleErr(err)

		if changed {
			fmt.Printf("%s installed %s\n", icon.Get(icon.Success), target)
		} else {
			fmt.Printf("%s %s is up to date\n", icon.Get(icon.Success), style.Fg(color.Yellow)(name))
		}
	},
}

func init() {
	sourcesCmd.AddCommand(sourcesGenCmd)

	sourcesGenCmd.Flags().StringP("name", "n", "", "The display name of the new source")
	sourcesGenCmd.Flags().StringP("url", "u", "", "The base URL of the site to scrape")

	lo.Must0(sourcesGenCmd.MarkFlagRequired("name"))
	lo.Must0(sourcesGenCmd.MarkFlagRequired("url"))
}

var sourcesGenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Scaffold a new Lua source script",
	Long:  `Generate a boilerplate Lua source script with the required functions and globals.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.SetOut(os.Stdout)

		var author string
		usr, err := user.Current()
		if err == nil {
			author = usr.Username
		} else {
			author = "Anonymous"
		}

		s := struct {
			Name            string
			URL             string
			Author          string
			SearchEventsFn  string
			EventStreamsFn  string
			BaseURLVar      string
			LabelVar        string
			ContentTypesVar string
			CountriesVar    string
		}{
			Name:            lo.Must(cmd.Flags().GetString("name")),
			URL:             lo.Must(cmd.Flags().GetString("url")),
			Author:          author,
			SearchEventsFn:  constant.SearchEventsFn,
			EventStreamsFn:  constant.EventStreamsFn,
			BaseURLVar:      constant.BaseURLVar,
			LabelVar:        constant.LabelVar,
			ContentTypesVar: constant.ContentTypesVar,
			CountriesVar:    constant.CountriesVar,
		}

		funcMap := template.FuncMap{
			"repeat": strings.Repeat,
			"plus":   func(a, b int) int { return a + b },
			"max":    util.Max[int],
		}

		tmpl, err := template.New("source").Funcs(funcMap).Parse(constant.SourceTemplate)
		handleErr(err)

		target := filepath.Join(where.Sources(), util.SanitizeFilename(s.Name)+custom.Extension)
		f, err := filesystem.API().Create(target)
		handleErr(err)

		defer util.Ignore(f.Close)

		handleErr(tmpl.Execute(f, s))

		cmd.Println(target)
	},
}

func init() {
	sourcesCmd.AddCommand(sourcesCheckCmd)
}

var sourcesCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Load every custom source and report the broken ones",
	Run: func(cmd *cobra.Command, args []string) {
		deps := provider.DepsFromConfig()

		var failed int
		for _, p := range provider.Customs() {
			if _, err := p.CreateSource(deps); err != nil {
				failed++
				printBrokenSource(p.Name, err)
				continue
			}

			fmt.Printf("%s %s\n", icon.Get(icon.Success), p.Name)
		}

		if failed > 0 {
			os.Exit(1)
		}
	},
}

func printBrokenSource(name string, err error) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(color.HiRed).Render(fmt.Sprintf("%s %s failed to load", icon.Get(icon.Fail), name))
	body := style.New().Foreground(color.White).Render(err.Error())
	hint := fmt.Sprintf("Fix the script or remove it with\n  %s",
		style.New().Foreground(color.Yellow).Bold(true).Render("fluxstream sources remove -n "+name))

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			body,
			"",
			hint,
		),
	))
}
