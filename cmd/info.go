package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leandrodaf/scorefollow/internal/scoreio"
)

// NewInfoCommand returns the command summarizing a MIDI file's note-on
// contents, useful for picking a track and channel to extract.
func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <score.mid>",
		Short: "Show per-track and per-channel note-on counts of a MIDI file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			info, err := scoreio.Info(f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d tracks\n", len(info.Tracks))
			for _, track := range info.Tracks {
				fmt.Fprintf(cmd.OutOrStdout(), "track %d: %d events\n", track.Track, track.Events)
				for channel, count := range track.NoteOns {
					if count > 0 {
						fmt.Fprintf(cmd.OutOrStdout(), "  channel %d: %d note-ons\n", channel, count)
					}
				}
			}
			return nil
		},
	}
}
