// Package cmd contains all the commands included in the binary file.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCommand enables all children commands to read configuration from
// CLI flags or environment variables prefixed with SCOREFOLLOW.
func NewRootCommand() *cobra.Command {
	viper.SetEnvPrefix("SCOREFOLLOW")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	return &cobra.Command{
		Use:   "scorefollow",
		Short: "Follow a live musical performance through a reference score",
		Long: `Follow a live musical performance through a reference score.

scorefollow aligns a stream of played notes against the note-on events of a
MIDI file in real time, continuously estimating the performer's position and
tempo so other event streams can be synchronized to it.`,
	}
}
