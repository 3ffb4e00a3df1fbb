package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fluxstream/fluxstream/auth"
	"github.com/fluxstream/fluxstream/color"
	"github.com/fluxstream/fluxstream/icon"
	"github.com/fluxstream/fluxstream/key"
	"github.com/fluxstream/fluxstream/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(tmdbCmd)
}

var tmdbCmd = &cobra.Command{
	Use:   "tmdb",
	Short: "Manage the TMDB API key used to look up titles",
}

func init() {
	tmdbCmd.AddCommand(tmdbLoginCmd)
	tmdbLoginCmd.Flags().StringP("key", "k", "", "The TMDB API key, read from stdin when omitted")
}

var tmdbLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the TMDB API key in the system keyring",
	Run: func(cmd *cobra.Command, args []string) {
		apiKey := lo.Must(cmd.Flags().GetString("key"))
		if apiKey == "" {
			fmt.Print("TMDB API key: ")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil && line == "" {
				handleErr(err)
			}
			apiKey = strings.TrimSpace(line)
		}

		if apiKey == "" {
			handleErr(errors.New("empty API key"))
		}

		handleErr(auth.SetAPIKey(apiKey))
		fmt.Printf("%s stored TMDB API key\n", style.Fg(color.Green)(icon.Get(icon.Success)))

		if viper.GetString(key.MetadataTMDBAPIKey) != "" {
			fmt.Printf("%s %s is set and takes precedence over the keyring\n",
				icon.Get(icon.Warn), style.Fg(color.Purple)(key.MetadataTMDBAPIKey))
		}
	},
}

func init() {
	tmdbCmd.AddCommand(tmdbLogoutCmd)
}

var tmdbLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the TMDB API key from the system keyring",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.DeleteAPIKey())
		fmt.Printf("%s removed TMDB API key\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}
