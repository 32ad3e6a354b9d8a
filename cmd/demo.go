package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/zjrosen/casier/internal/demo"
	"github.com/zjrosen/casier/internal/dispatch"
	"github.com/zjrosen/casier/internal/ops"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted walkthrough of the register operations",
	Long:  `Seeds the in-memory host, then exercises each operation in turn and prints the register listing after every step. Useful for a quick look at the semantics without the interactive browser.`,
	RunE:  runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	h, st := demo.Seed()
	defer st.Close()

	disp := dispatch.New(h.Services(), dispatch.WithTerseWidth(cfg.TerseWidth))
	svc := ops.NewService(st, h.Services(), ops.WithSeparator(cfg.Separator))

	listing := func(header string) {
		fmt.Fprintf(out, "-- %s\n", header)
		keys := st.Keys()
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		for _, key := range keys {
			r, ok := st.Get(key)
			if !ok {
				continue
			}
			fmt.Fprintf(out, "  %s: %s\n", key, disp.Print(r, false))
		}
		fmt.Fprintln(out)
	}

	listing("seeded registers")

	// Capture a region from the current buffer
	id := h.CurrentSource()
	svc.CopyRegion(ctx, "c", h.MarkerAt(id, 4), h.MarkerAt(id, 19), false)
	listing(`after copying "quick brown fox" into register c`)

	// Number handling: store, then increment
	svc.StoreNumber(ctx, "n", nil)
	if err := svc.Increment(ctx, "n", 8); err != nil {
		return err
	}
	listing("after incrementing register n by 8")

	// Accumulate text with append/prepend
	if err := svc.Append(ctx, "c", " jumps"); err != nil {
		return err
	}
	if err := svc.Prepend(ctx, "c", "The "); err != nil {
		return err
	}
	listing("after appending and prepending to register c")

	// Jump somewhere else, then restore the saved position
	h.MoveTo(30)
	if r, err := st.GetOrFail("m"); err == nil {
		if err := disp.Restore(ctx, r); err != nil {
			return err
		}
		fmt.Fprintf(out, "-- restored register m, point is back at %d\n\n", h.Point())
	}

	// Insert a register's content at point
	if r, err := st.GetOrFail("t"); err == nil {
		payload, err := disp.Insert(ctx, r)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "-- inserted register t (%d characters) at point\n\n", len(payload))
	}

	// Destroying a buffer swaps its markers for deferred file refs
	scratch := h.NewBuffer("scratch-notes", "text that will not survive")
	h.MoveTo(5)
	svc.SavePosition(ctx, "p")
	svc.SwapOutOnSourceDestroyed(ctx, scratch, "/tmp/scratch-notes")
	h.Destroy(scratch)
	listing("after destroying the buffer behind register p")

	// Verbose descriptions for everything still stored
	fmt.Fprintln(out, "-- verbose descriptions")
	keys := st.Keys()
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, key := range keys {
		if r, ok := st.Get(key); ok {
			fmt.Fprintf(out, "  %s holds %s\n", key, disp.Print(r, true))
		}
	}

	return nil
}
