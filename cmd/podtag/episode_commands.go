package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"podtag/internal/album"
	"podtag/internal/annotate"
	"podtag/internal/logging"
	"podtag/internal/vocab"
)

func newEpisodeCommand(ctx *commandContext) *cobra.Command {
	episodeCmd := &cobra.Command{
		Use:   "episode",
		Short: "Browse and annotate album episodes",
	}

	episodeCmd.AddCommand(newEpisodeListCommand(ctx))
	episodeCmd.AddCommand(newEpisodeSearchCommand(ctx))
	episodeCmd.AddCommand(newEpisodeAnnotateCommand(ctx))
	episodeCmd.AddCommand(newEpisodeAppendCommand(ctx))

	return episodeCmd
}

func newEpisodeListCommand(ctx *commandContext) *cobra.Command {
	var noHighlight bool

	cmd := &cobra.Command{
		Use:   "list <album-id>",
		Short: "List episodes, unannotated first, with keywords highlighted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			albumID := args[0]

			vocabulary, err := ctx.vocabularyNames(noHighlight)
			if err != nil {
				return err
			}

			return ctx.withAlbum(albumID, func(store *album.Store) error {
				episodes, err := store.OrderedForDisplay(cmd.Context())
				if err != nil {
					return err
				}
				printEpisodeTable(cmd, episodes, vocabulary)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&noHighlight, "no-highlight", false, "Skip keyword highlighting")
	return cmd
}

func newEpisodeSearchCommand(ctx *commandContext) *cobra.Command {
	var noHighlight bool

	cmd := &cobra.Command{
		Use:   "search <album-id> <keyword>",
		Short: "Find episodes whose annotation contains a keyword",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			albumID, keyword := args[0], args[1]

			vocabulary, err := ctx.vocabularyNames(noHighlight)
			if err != nil {
				return err
			}

			return ctx.withAlbum(albumID, func(store *album.Store) error {
				episodes, err := store.Search(cmd.Context(), keyword)
				if err != nil {
					return err
				}
				printEpisodeTable(cmd, episodes, vocabulary)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&noHighlight, "no-highlight", false, "Skip keyword highlighting")
	return cmd
}

func newEpisodeAnnotateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "annotate <album-id> <episode-id> <text>",
		Short: "Replace an episode's annotation",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			albumID := args[0]
			episodeID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("episode id %q: %w", args[1], err)
			}
			text := args[2]

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			runCtx := logging.WithAlbumID(ctx.mutationContext(cmd.Context()), albumID)

			return ctx.withAlbum(albumID, func(store *album.Store) error {
				if err := store.UpdateAnnotation(runCtx, episodeID, text); err != nil {
					return err
				}
				logging.WithContext(runCtx, logger).Info("annotation updated", "episode_id", episodeID)
				fmt.Fprintf(cmd.OutOrStdout(), "Episode %d annotated\n", episodeID)
				return nil
			})
		},
	}
}

func newEpisodeAppendCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "append <album-id> <episode-ids> <suffix>",
		Short: "Append text to the annotations of several episodes at once",
		Long:  "Episode ids are comma separated, e.g. `podtag episode append 298736 3,5,9 \" 【历史】\"`.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			albumID := args[0]
			ids, err := parseIDList(args[1])
			if err != nil {
				return err
			}
			suffix := args[2]

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			runCtx := logging.WithAlbumID(ctx.mutationContext(cmd.Context()), albumID)

			return ctx.withAlbum(albumID, func(store *album.Store) error {
				if err := store.AppendAnnotation(runCtx, ids, suffix); err != nil {
					return err
				}
				logging.WithContext(runCtx, logger).Info("annotations appended", "episodes", len(ids))
				fmt.Fprintf(cmd.OutOrStdout(), "Appended to %d episodes\n", len(ids))
				return nil
			})
		},
	}
}

// vocabularyNames loads the keyword list used for highlighting. A missing or
// empty vocabulary disables highlighting rather than failing the listing.
func (c *commandContext) vocabularyNames(disabled bool) ([]string, error) {
	if disabled {
		return nil, nil
	}
	var names []string
	err := c.withVocab(func(store *vocab.Store) error {
		names = store.Names()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

func printEpisodeTable(cmd *cobra.Command, episodes []*album.Episode, vocabulary []string) {
	rows := make([][]string, 0, len(episodes))
	for _, episode := range episodes {
		text := episode.DisplayText()
		if len(vocabulary) > 0 && episode.Annotation != "" {
			text = annotate.Highlight(text, vocabulary)
		}
		rows = append(rows, []string{
			strconv.FormatInt(episode.ID, 10),
			episode.Duration,
			text,
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(out, []string{"ID", "Duration", "Annotation"}, rows, []columnAlignment{alignRight}))
	fmt.Fprintf(out, "%d episodes\n", len(episodes))
}

func parseIDList(raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("episode id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no episode ids given")
	}
	return ids, nil
}
