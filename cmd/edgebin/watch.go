package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/edgebin/internal/events"
	"github.com/alfredjeanlab/edgebin/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Short:   "Stream conversion events from the event bus",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.NATSURL == "" {
			return fmt.Errorf("watch requires EDGEBIN_NATS_URL or nats_url in the config file")
		}

		sub, err := events.NewNATSSubscriber(cfg.NATSURL,
			nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
				logger.Warn("NATS disconnected", "err", err)
			}),
			nats.ReconnectHandler(func(_ *nats.Conn) {
				logger.Info("NATS reconnected")
			}),
		)
		if err != nil {
			return err
		}
		defer sub.Close()

		ch, cancel, err := sub.Subscribe(events.TopicAll)
		if err != nil {
			return err
		}
		defer cancel()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		out := cmd.OutOrStdout()
		for {
			select {
			case <-ctx.Done():
				return nil
			case msg, ok := <-ch:
				if !ok {
					return nil
				}
				if jsonOutput {
					fmt.Fprintln(out, string(msg.Data))
					continue
				}
				printEventLine(out, msg, time.Now())
			}
		}
	},
}

// printEventLine renders one bus message as a single status line.
func printEventLine(w io.Writer, msg events.Message, at time.Time) {
	stamp := ui.RenderMuted(at.Format("15:04:05"))
	switch msg.Topic {
	case events.TopicConvertCompleted, events.TopicConvertFailed:
		var ev events.ConvertCompleted
		if err := json.Unmarshal(msg.Data, &ev); err != nil || ev.Run == nil {
			fmt.Fprintf(w, "%s %s (undecodable payload)\n", stamp, msg.Topic)
			return
		}
		r := ev.Run
		if msg.Topic == events.TopicConvertFailed {
			fmt.Fprintf(w, "%s %s %s %s: %s\n", stamp, ui.RenderFail("FAIL"), r.ID, r.Input, r.Error)
			return
		}
		fmt.Fprintf(w, "%s %s %s %s -> %s (%d records)\n", stamp, ui.RenderPass("OK  "), r.ID, r.Input, r.Output, r.Records)
	case events.TopicUploadCompleted:
		var ev events.UploadCompleted
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			fmt.Fprintf(w, "%s %s (undecodable payload)\n", stamp, msg.Topic)
			return
		}
		fmt.Fprintf(w, "%s %s %s %s (%d bytes)\n", stamp, ui.RenderAccent("PUT "), ev.RunID, ev.URI, ev.Bytes)
	default:
		fmt.Fprintf(w, "%s %s %s\n", stamp, msg.Topic, string(msg.Data))
	}
}
