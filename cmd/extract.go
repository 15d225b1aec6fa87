package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/leandrodaf/scorefollow/internal/scoreio"
	"github.com/leandrodaf/scorefollow/sdk/contracts"
)

// NewExtractCommand returns the command dumping a score file's note-ons
// as "timestamp pitch" lines, the encoding the stream transports consume.
func NewExtractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <score.mid>",
		Short: "Dump a score file's note-on events as timestamp/pitch lines",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return viper.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := scoreio.ExtractFile(args[0], viper.GetInt("track"), viper.GetInt("channel"))
			if err != nil {
				return err
			}
			for _, event := range events {
				fmt.Fprintf(cmd.OutOrStdout(), "%d %d\n", event.Time, event.Pitch)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Int("track", scoreio.AllTracks, "score track to extract (-1 for all)")
	flags.Int("channel", contracts.AnyChannel, "MIDI channel to extract (-1 for all)")
	return cmd
}
