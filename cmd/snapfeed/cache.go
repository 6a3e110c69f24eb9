package main

import (
	"fmt"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/snapfeed/internal/adapter"
)

// Run executes the cache ls command.
func (c *CacheLsCmd) Run(deps *Dependencies) error {
	pages := []int{c.Page}
	if c.Page <= 0 {
		var err error
		pages, err = deps.Store.Pages()
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", err)
			return err
		}
	}

	listed := 0
	for _, page := range pages {
		records, err := deps.Store.ImagesForPage(page)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", err)
			return err
		}
		for _, r := range records {
			if c.Match != "" && !fuzzy.MatchNormalizedFold(c.Match, r.URL) {
				continue
			}
			fmt.Fprintf(deps.Stdout, "%4d  %s\n", r.Page, displayURL(r.URL))
			listed++
		}
	}

	if listed == 0 {
		fmt.Fprintln(deps.Stdout, "No cached images found. Run 'snapfeed' to fetch some.")
		return nil
	}

	total, err := deps.Store.Count()
	if err != nil {
		deps.Logger.Warn("failed to count cached images", "error", err)
		return nil
	}
	fmt.Fprintf(deps.Stdout, "%d of %d cached images\n", listed, total)
	return nil
}

// Run executes the cache clear command.
func (c *CacheClearCmd) Run(deps *Dependencies) error {
	if c.All {
		dir := deps.Config.CachePath()
		if dir == "" {
			fmt.Fprintln(deps.Stdout, "Cache is memory-only; nothing to remove.")
			return nil
		}
		if err := adapter.ClearCache(dir); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", err)
			return err
		}
		deps.Logger.Info("cache directory removed", "dir", dir)
		fmt.Fprintf(deps.Stdout, "Removed %s\n", dir)
		return nil
	}

	count, err := deps.Store.Count()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	if err := deps.Store.Clear(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	deps.Logger.Info("cache cleared", "images", count)
	fmt.Fprintf(deps.Stdout, "Removed %d cached images\n", count)
	return nil
}

func displayURL(u string) string {
	if u == "" {
		return "(no url)"
	}
	return u
}
