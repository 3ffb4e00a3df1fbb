package cmd

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/fluxstream/fluxstream/aggregate"
	"github.com/fluxstream/fluxstream/filesystem"
	"github.com/fluxstream/fluxstream/id"
	"github.com/fluxstream/fluxstream/inline"
	"github.com/fluxstream/fluxstream/key"
	"github.com/fluxstream/fluxstream/open"
	"github.com/fluxstream/fluxstream/provider"
	"github.com/fluxstream/fluxstream/util"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringP("type", "t", "", "Content type of the request: movie or tv")
	resolveCmd.Flags().StringP("id", "i", "", "Identifier: tt0133093, tt0944947:1:2, tmdb:603 or source:slug")
	resolveCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	resolveCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")
	resolveCmd.Flags().StringP("streams", "s", "", "Select streams: first, last, all, [index], [from]-[to] or @[substring]@")
	resolveCmd.Flags().Bool("open", false, "Open the first selected stream with the default handler")
	resolveCmd.Flags().String("open-with", "", "Open the first selected stream with this application, e.g. mpv")
	resolveCmd.Flags().IntP("concurrency", "c", 0, "Maximum number of sources scraped at once, 0 for no limit")

	resolveCmd.Flags().DurationP("deadline", "d", 0, "Time budget of the whole request")
	lo.Must0(viper.BindPFlag(key.ResolveDeadline, resolveCmd.Flags().Lookup("deadline")))

	resolveCmd.Flags().Duration("source-timeout", 0, "Time budget of each source, 0 for none")
	lo.Must0(viper.BindPFlag(key.ResolveSourceTimeout, resolveCmd.Flags().Lookup("source-timeout")))

	lo.Must0(resolveCmd.MarkFlagRequired("type"))
	lo.Must0(resolveCmd.MarkFlagRequired("id"))

	lo.Must0(resolveCmd.RegisterFlagCompletionFunc("type", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{string(id.Movie), string(id.Series)}, cobra.ShellCompDirectiveNoFileComp
	}))

	lo.Must0(resolveCmd.RegisterFlagCompletionFunc("id", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		ids, _ := completionSourceIDs(cmd, args, toComplete)
		return lo.Map(ids, func(s string, _ int) string {
			return s + ":"
		}), cobra.ShellCompDirectiveNoSpace | cobra.ShellCompDirectiveNoFileComp
	}))
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Find the streams available for a title or event",
	Long: `Ask every eligible source for streams of one title or event and print what arrives before the deadline.

Identifiers:
  tt0133093          IMDb title
  tt0944947:1:2      IMDb series, season 1 episode 2
  tmdb:603           TMDB title
  watchmmafull:slug  event page of a single source

Stream selectors:
  first, last, all   as named
  [number]           stream by index (starting from 0)
  [from]-[to]        streams by range
  @[substring]@      streams whose title or source contains substring`,
	Example: "  fluxstream resolve -t tv -i watchmmafull:ufc-323-event --json",
	Run: func(cmd *cobra.Command, args []string) {
		ct, err := id.ParseContentType(lo.Must(cmd.Flags().GetString("type")))
		handleErr(err)

		streamsFilter := mo.None[inline.StreamsFilter]()
		if selector := lo.Must(cmd.Flags().GetString("streams")); selector != "" {
			fn, err := inline.ParseStreamsFilter(selector)
			handleErr(err)
			streamsFilter = mo.Some(fn)
		}

		opener := mo.None[inline.Opener]()
		if app := lo.Must(cmd.Flags().GetString("open-with")); app != "" || lo.Must(cmd.Flags().GetBool("open")) {
			opener = mo.Some[inline.Opener](func(url string) error {
				return open.StartWith(url, app)
			})
		}

		var writer io.Writer = os.Stdout
		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer util.Ignore(file.Close)
			writer = file
		}

		sources := provider.Registry(provider.DepsFromConfig(), excludedSources())
		aggregator := aggregate.New(
			sources,
			aggregate.WithDeadline(viper.GetDuration(key.ResolveDeadline)),
			aggregate.WithSourceTimeout(viper.GetDuration(key.ResolveSourceTimeout)),
			aggregate.WithConcurrency(lo.Must(cmd.Flags().GetInt("concurrency"))),
		)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		handleErr(inline.Run(ctx, &inline.Options{
			Out:           writer,
			Resolver:      aggregator,
			Type:          ct,
			RawID:         lo.Must(cmd.Flags().GetString("id")),
			Json:          lo.Must(cmd.Flags().GetBool("json")),
			StreamsFilter: streamsFilter,
			Open:          opener,
		}))
	},
}

func init() {
	resolveCmd.AddCommand(resolveSchemaCmd)
}

var resolveSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the resolve --json output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "output", "result", "meta":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(reflector.Reflect(&inline.Output{})))
	},
}
