package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/brogergvhs/mangawatch/internal/chapters"
	"github.com/brogergvhs/mangawatch/internal/config"
	"github.com/brogergvhs/mangawatch/internal/store"
	"github.com/brogergvhs/mangawatch/internal/tracking"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(
		newListCmd(tracking.Allow, "Manage the series you follow"),
		newListCmd(tracking.Deny, "Manage the series you ignore"),
	)
}

func newListCmd(d tracking.Decision, short string) *cobra.Command {
	name := d.String()

	c := &cobra.Command{
		Use:   name,
		Short: short,
	}

	c.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: fmt.Sprintf("Show the %s list", name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(st *store.Store) error {
				keys, err := listFor(st, d).ListAll(cmd.Context())
				if err != nil {
					return err
				}
				for _, k := range keys {
					fmt.Println(k)
				}
				return nil
			})
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "add <url>...",
		Short: fmt.Sprintf("Add series to the %s list (chapter URLs or series URLs)", name),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStore(ctx, func(st *store.Store) error {
				for _, arg := range args {
					key := seriesKeyOf(arg)
					if err := addTo(ctx, st, d, key); err != nil {
						return err
					}
				}
				return nil
			})
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "rm <url or search>",
		Short: fmt.Sprintf("Remove a series from the %s list", name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStore(ctx, func(st *store.Store) error {
				return removeFrom(ctx, listFor(st, d), args[0])
			})
		},
	})

	return c
}

func withStore(ctx context.Context, fn func(*store.Store) error) error {
	cfg, _, err := config.LoadMerged(config.Options{
		IgnoreConfig: flagIgnoreConfig,
		Debug:        flagDebug,
	})
	if err != nil {
		return err
	}

	st, err := store.Open(ctx, cfg.StorePath)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	return fn(st)
}

func listFor(st *store.Store, d tracking.Decision) *store.List {
	if d == tracking.Deny {
		return st.Denylist()
	}
	return st.Allowlist()
}

// seriesKeyOf accepts a chapter URL or the series prefix itself.
func seriesKeyOf(arg string) chapters.SeriesKey {
	arg = strings.TrimSpace(arg)
	if ch, err := chapters.Parse(arg); err == nil {
		return ch.Series
	}
	if !strings.HasSuffix(arg, "/") {
		arg += "/"
	}
	return chapters.SeriesKey(arg)
}

// addTo records d for key, taking it off the opposite list first.
func addTo(ctx context.Context, st *store.Store, d tracking.Decision, key chapters.SeriesKey) error {
	filter := tracking.Filter{Allow: st.Allowlist(), Deny: st.Denylist()}

	prev, known, err := filter.StatusOf(ctx, key)
	if err != nil {
		return err
	}
	if known && prev == d {
		fmt.Printf("%s is already on the %s list\n", key, d)
		return nil
	}

	if known {
		if _, err := listFor(st, prev).Remove(ctx, key); err != nil {
			return err
		}
	}

	if err := filter.Classify(ctx, chapters.Tracked{}, key, d); err != nil {
		return err
	}

	if known {
		fmt.Printf("Moved %s from the %s list to the %s list\n", key, prev, d)
	} else {
		fmt.Printf("Added %s to the %s list\n", key, d)
	}
	return nil
}

func removeFrom(ctx context.Context, list *store.List, query string) error {
	keys, err := list.ListAll(ctx)
	if err != nil {
		return err
	}

	matches := tracking.Lookup(strings.TrimSpace(query), keys)

	var key chapters.SeriesKey
	switch len(matches) {
	case 0:
		return fmt.Errorf("nothing on the %s list matches %q", list.Name(), query)
	case 1:
		key = matches[0]
	default:
		if len(matches) > 10 {
			matches = matches[:10]
		}

		prompt := promptui.Select{
			Label: "Select series to remove",
			Items: matches,
		}
		idx, _, err := prompt.Run()
		if err != nil {
			return fmt.Errorf("selection cancelled")
		}
		key = matches[idx]
	}

	removed, err := list.Remove(ctx, key)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%s is not on the %s list", key, list.Name())
	}

	fmt.Printf("Removed %s from the %s list\n", key, list.Name())
	return nil
}
