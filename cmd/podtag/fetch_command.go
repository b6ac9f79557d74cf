package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"podtag/internal/album"
	"podtag/internal/feed"
	"podtag/internal/logging"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <album-id>...",
		Short: "Download album feeds and store new episodes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			fetcher := feed.NewFetcher(cfg.Feed)
			out := cmd.OutOrStdout()

			for _, albumID := range args {
				runCtx := logging.WithAlbumID(ctx.mutationContext(cmd.Context()), albumID)
				runLogger := logging.WithContext(runCtx, logger)

				channel, err := fetcher.Fetch(runCtx, albumID)
				if err != nil {
					return err
				}
				runLogger.Info("feed fetched", "title", channel.Title, "items", len(channel.Items))

				err = ctx.withNewAlbum(albumID, func(store *album.Store) error {
					result, err := feed.Ingest(runCtx, runLogger, store, albumID, channel)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Album %s (%s): %d items, %d new, %d already present\n",
						albumID, channel.Title, result.Processed, result.Added, result.Skipped)
					return nil
				})
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
}
