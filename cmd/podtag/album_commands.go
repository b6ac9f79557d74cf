package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"podtag/internal/album"
)

func newAlbumCommand(ctx *commandContext) *cobra.Command {
	albumCmd := &cobra.Command{
		Use:   "album",
		Short: "Inspect local album catalogs",
	}

	albumCmd.AddCommand(newAlbumListCommand(ctx))

	return albumCmd
}

func newAlbumListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List albums discovered in the albums directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			albums, err := album.Discover(cmd.Context(), cfg.Paths.AlbumsDir)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(albums))
			for _, info := range albums {
				rows = append(rows, []string{info.ID, info.Title, info.Path})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out, []string{"ID", "Title", "Database"}, rows, nil))
			fmt.Fprintf(out, "%d albums\n", len(albums))
			return nil
		},
	}
}
