package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/leandrodaf/scorefollow/internal/emitter"
	"github.com/leandrodaf/scorefollow/internal/logger"
	"github.com/leandrodaf/scorefollow/internal/scoreio"
	"github.com/leandrodaf/scorefollow/sdk/contracts"
	"github.com/leandrodaf/scorefollow/sdk/follower"
	"github.com/leandrodaf/scorefollow/sdk/transport"
)

// NewFollowCommand returns the command tracking a live performance
// against a reference score file.
func NewFollowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "follow",
		Short: "Track a live performance against a score file",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return viper.BindPFlags(cmd.Flags())
		},
		RunE: runFollow,
	}

	flags := cmd.Flags()
	flags.String("score", "", "path to the reference MIDI file")
	flags.Int("track", scoreio.AllTracks, "score track to extract (-1 for all)")
	flags.Int("channel", contracts.AnyChannel, "MIDI channel to extract and capture (-1 for all)")
	flags.Int("window", 0, "forward search window in score positions (0 = strict matching)")
	flags.Float64("min-stretch", contracts.DefaultMinStretch, "lower bound for the tempo estimate")
	flags.Float64("max-stretch", contracts.DefaultMaxStretch, "upper bound for the tempo estimate")
	flags.String("source", string(transport.KindStdin), "live input source: device, stdin, tcp, unix or ws")
	flags.String("address", "", "endpoint for the tcp, unix and ws sources")
	flags.Int("device", 0, "MIDI device ID for the device source")
	flags.Bool("list-devices", false, "list MIDI input devices and exit")
	flags.Bool("verbose", false, "enable debug logging")
	return cmd
}

func runFollow(cmd *cobra.Command, _ []string) error {
	log := logger.NewZapLogger()
	if viper.GetBool("verbose") {
		log = logger.NewDevelopmentLogger()
	}

	transportOpts := []contracts.Option{
		contracts.WithLogger(log),
		contracts.WithChannel(viper.GetInt("channel")),
		contracts.WithAddress(viper.GetString("address")),
	}

	if viper.GetBool("list-devices") {
		source, err := transport.NewDeviceSource(transportOpts...)
		if err != nil {
			return err
		}
		devices, err := source.ListDevices()
		if err != nil {
			return err
		}
		for i, device := range devices {
			fmt.Fprintf(cmd.OutOrStdout(), "%d: %s (%s)\n", i, device.Name, device.Manufacturer)
		}
		return nil
	}

	scorePath := viper.GetString("score")
	if scorePath == "" {
		return errors.New("--score is required")
	}
	events, err := scoreio.ExtractFile(scorePath, viper.GetInt("track"), viper.GetInt("channel"))
	if err != nil {
		return err
	}
	score, err := follower.NewScore(events)
	if err != nil {
		return err
	}

	source, err := transport.NewEventSource(transport.Kind(viper.GetString("source")), transportOpts...)
	if err != nil {
		return err
	}
	if device, ok := source.(contracts.DeviceSource); ok {
		if err := device.SelectDevice(viper.GetInt("device")); err != nil {
			return err
		}
	}

	session, err := follower.NewSession(score,
		contracts.WithLogger(log),
		contracts.WithWindow(viper.GetInt("window")),
		contracts.WithStretchBounds(viper.GetFloat64("min-stretch"), viper.GetFloat64("max-stretch")),
		contracts.WithResultSink(emitter.NewConsole(cmd.OutOrStdout(), score)),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	liveEvents := make(chan contracts.Event, 128)
	source.StartCapture(liveEvents)
	defer func() {
		_ = source.Stop()
	}()

	if err := session.Run(ctx, liveEvents); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
