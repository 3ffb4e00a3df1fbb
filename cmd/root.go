// Package cmd implements the command-line interface of fluxstream.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fluxstream/fluxstream/color"
	"github.com/fluxstream/fluxstream/constant"
	"github.com/fluxstream/fluxstream/icon"
	"github.com/fluxstream/fluxstream/key"
	"github.com/fluxstream/fluxstream/log"
	"github.com/fluxstream/fluxstream/network"
	"github.com/fluxstream/fluxstream/provider"
	"github.com/fluxstream/fluxstream/style"
	"github.com/fluxstream/fluxstream/util"
	"github.com/fluxstream/fluxstream/version"
	"github.com/fluxstream/fluxstream/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringSliceP("exclude", "x", []string{}, "Source ids to leave out of the registry")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("exclude", completionSourceIDs))
	lo.Must0(viper.BindPFlag(key.SourcesExcluded, rootCmd.PersistentFlags().Lookup("exclude")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify(os.Stdout, network.FromConfig())
	})

	go func() {
		_ = util.Delete(where.Temp())
	}()
}

var rootCmd = &cobra.Command{
	Use:   constant.Fluxstream,
	Short: "Find playable streams for a movie, episode or event across many sites",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiCyan).Render("    - Find playable streams for a movie, episode or event across many sites"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(cmd.Help())
	},
}

// Execute runs the command selected by the process arguments.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}

// excludedSources reads the exclusion list from flags, config or the environment.
// Both "a,b" and "a b" forms are accepted.
func excludedSources() []string {
	return provider.ParseExcluded(strings.Join(viper.GetStringSlice(key.SourcesExcluded), ","))
}

func completionSourceIDs(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Map(provider.All(), func(p *provider.Provider, _ int) string {
		return p.ID
	}), cobra.ShellCompDirectiveNoFileComp
}
