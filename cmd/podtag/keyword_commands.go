package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"podtag/internal/logging"
	"podtag/internal/vocab"
)

func newKeywordCommand(ctx *commandContext) *cobra.Command {
	keywordCmd := &cobra.Command{
		Use:   "keyword",
		Short: "Manage the keyword vocabulary graph",
	}

	keywordCmd.AddCommand(newKeywordAddCommand(ctx))
	keywordCmd.AddCommand(newKeywordRemoveCommand(ctx))
	keywordCmd.AddCommand(newKeywordRenameCommand(ctx))
	keywordCmd.AddCommand(newKeywordLinkCommand(ctx))
	keywordCmd.AddCommand(newKeywordUnlinkCommand(ctx))
	keywordCmd.AddCommand(newKeywordShowCommand(ctx))
	keywordCmd.AddCommand(newKeywordListCommand(ctx))
	keywordCmd.AddCommand(newKeywordSearchCommand(ctx))

	return keywordCmd
}

func newKeywordAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> [description]",
		Short: "Add a keyword or update its description",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			var description string
			if len(args) > 1 {
				description = args[1]
			}

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			runCtx := ctx.mutationContext(cmd.Context())

			return ctx.withVocab(func(store *vocab.Store) error {
				if err := store.UpsertNode(runCtx, name, description); err != nil {
					return err
				}
				logging.WithContext(runCtx, logger).Info("keyword upserted", logging.FieldKeyword, name)
				fmt.Fprintf(cmd.OutOrStdout(), "Keyword %q saved\n", name)
				return nil
			})
		},
	}
}

func newKeywordRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Delete a keyword and every relationship touching it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			runCtx := ctx.mutationContext(cmd.Context())

			return ctx.withVocab(func(store *vocab.Store) error {
				if err := store.DeleteNode(runCtx, name); err != nil {
					return err
				}
				logging.WithContext(runCtx, logger).Info("keyword deleted", logging.FieldKeyword, name)
				fmt.Fprintf(cmd.OutOrStdout(), "Keyword %q deleted\n", name)
				return nil
			})
		},
	}
}

func newKeywordRenameCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old> <new> [description]",
		Short: "Rename a keyword, rewriting its relationships",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldName := strings.TrimSpace(args[0])
			newName := strings.TrimSpace(args[1])

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			runCtx := ctx.mutationContext(cmd.Context())

			return ctx.withVocab(func(store *vocab.Store) error {
				description := ""
				if len(args) > 2 {
					description = args[2]
				} else if node, ok := store.Node(oldName); ok {
					description = node.Description
				}

				if err := store.RenameNode(runCtx, oldName, newName, description); err != nil {
					return err
				}
				logging.WithContext(runCtx, logger).Info("keyword renamed",
					"old_name", oldName, "new_name", newName)
				fmt.Fprintf(cmd.OutOrStdout(), "Keyword %q renamed to %q\n", oldName, newName)
				return nil
			})
		},
	}
}

func newKeywordLinkCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "link <parent> <child>",
		Short: "Add a parent-to-child relationship between keywords",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			parent := strings.TrimSpace(args[0])
			child := strings.TrimSpace(args[1])

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			runCtx := ctx.mutationContext(cmd.Context())

			return ctx.withVocab(func(store *vocab.Store) error {
				if err := store.AddEdge(runCtx, parent, child); err != nil {
					return err
				}
				logging.WithContext(runCtx, logger).Info("relationship added",
					"parent", parent, "child", child)
				fmt.Fprintf(cmd.OutOrStdout(), "Linked %q -> %q\n", parent, child)
				return nil
			})
		},
	}
}

func newKeywordUnlinkCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unlink <parent> <child>",
		Short: "Remove a parent-to-child relationship",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			parent := strings.TrimSpace(args[0])
			child := strings.TrimSpace(args[1])

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			runCtx := ctx.mutationContext(cmd.Context())

			return ctx.withVocab(func(store *vocab.Store) error {
				if err := store.RemoveEdge(runCtx, parent, child); err != nil {
					return err
				}
				logging.WithContext(runCtx, logger).Info("relationship removed",
					"parent", parent, "child", child)
				fmt.Fprintf(cmd.OutOrStdout(), "Unlinked %q -> %q\n", parent, child)
				return nil
			})
		},
	}
}

func newKeywordShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a keyword with its parents, children, and siblings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])

			return ctx.withVocab(func(store *vocab.Store) error {
				node, ok := store.Node(name)
				if !ok {
					return fmt.Errorf("keyword %q: %w", name, vocab.ErrNotFound)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Keyword:     %s\n", node.Name)
				if node.Description != "" {
					fmt.Fprintf(out, "Description: %s\n", node.Description)
				}

				rows := [][]string{
					{"parents", strings.Join(store.Parents(name), ", ")},
					{"children", strings.Join(store.Children(name), ", ")},
					{"siblings", strings.Join(store.Siblings(name), ", ")},
				}
				fmt.Fprintln(out, renderTable(out, []string{"Relation", "Keywords"}, rows, nil))
				return nil
			})
		},
	}
}

func newKeywordListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the whole keyword vocabulary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withVocab(func(store *vocab.Store) error {
				nodes := store.Nodes()
				rows := make([][]string, 0, len(nodes))
				for _, node := range nodes {
					rows = append(rows, []string{node.Name, node.Description})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTable(out, []string{"Keyword", "Description"}, rows, nil))
				fmt.Fprintf(out, "%d keywords\n", len(nodes))
				return nil
			})
		},
	}
}

func newKeywordSearchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "search <text>",
		Short: "Find keywords whose name or description contains text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			needle := strings.ToLower(strings.TrimSpace(args[0]))
			if needle == "" {
				return fmt.Errorf("search text is empty")
			}

			return ctx.withVocab(func(store *vocab.Store) error {
				var rows [][]string
				for _, node := range store.Nodes() {
					if strings.Contains(strings.ToLower(node.Name), needle) ||
						strings.Contains(strings.ToLower(node.Description), needle) {
						rows = append(rows, []string{node.Name, node.Description})
					}
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTable(out, []string{"Keyword", "Description"}, rows, nil))
				fmt.Fprintf(out, "%d matches\n", len(rows))
				return nil
			})
		},
	}
}
