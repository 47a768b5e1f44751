package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledgerwatch/tokenstore/hashfacade"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCommand(logger *zap.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "tokenstore-demo",
		Short: "Exercise the tokenstore library against a scripted sequence of operations",
	}
	root.AddCommand(newRunCommand(logger))
	return root
}

func newRunCommand(logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "run [script-file]",
		Short: "Run a newline-delimited script of store operations, or read one from stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening script: %w", err)
				}
				defer f.Close()
				in = f
			}
			return runScript(cmd.OutOrStdout(), in, logger)
		},
	}
}

// runScript executes one operation per line against a single store, so
// staged changes made by one line are visible to the next — the only way
// a non-persistent, non-networked library like this one can demo Commit
// vs Discard across a sequence of steps. Supported verbs:
//
//	seed <hash> <value>
//	stage <old|-> <new|-> <value|->
//	commit
//	discard
//	snapshot <hash>
//	diff committed|uncommitted|full
//	stats
//
// "-" stands in for an absent hash or a null value.
func runScript(out io.Writer, in io.Reader, logger *zap.Logger) error {
	store := hashfacade.New()
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := runLine(store, out, line); err != nil {
			logger.Warn("script line failed", zap.String("line", line), zap.Error(err))
			return err
		}
	}
	return scanner.Err()
}

func runLine(store *hashfacade.Store, out io.Writer, line string) error {
	fields := strings.Fields(line)
	verb := fields[0]
	args := fields[1:]

	switch verb {
	case "seed":
		if len(args) != 2 {
			return fmt.Errorf("seed <hash> <value>")
		}
		res := store.Seed(args[0], dash(args[1]))
		fmt.Fprintf(out, "seed %s -> %s\n", args[0], res)

	case "stage":
		if len(args) != 3 {
			return fmt.Errorf("stage <old|-> <new|-> <value|->")
		}
		res := store.Stage(dashStr(args[0]), dashStr(args[1]), dash(args[2]))
		fmt.Fprintf(out, "stage %s %s -> %s\n", args[0], args[1], res)

	case "commit":
		store.Commit()
		fmt.Fprintln(out, "commit")

	case "discard":
		store.Discard()
		fmt.Fprintln(out, "discard")

	case "snapshot":
		if len(args) != 1 {
			return fmt.Errorf("snapshot <hash>")
		}
		snap, ok := store.TryGetSnapshot(args[0])
		if !ok {
			fmt.Fprintf(out, "snapshot %s -> none\n", args[0])
			return nil
		}
		fmt.Fprintf(out, "snapshot %s -> initial=%s previous=%s current=%s value=%s\n",
			args[0], snap.InitialHash, snap.PreviousHash, snap.CurrentHash, hashfacade.StrOrEmpty(snap.CurrentValue))

	case "diff":
		if len(args) != 1 {
			return fmt.Errorf("diff committed|uncommitted|full")
		}
		var diffs []hashfacade.Diff
		switch args[0] {
		case "committed":
			diffs = store.GetCommittedDiff()
		case "uncommitted":
			diffs = store.GetUncommittedDiff()
		case "full":
			diffs = store.GetFullDiff()
		default:
			return fmt.Errorf("unknown diff view %q", args[0])
		}
		for _, d := range diffs {
			fmt.Fprintf(out, "diff %s -> %s\n", d.LeftHash, d.RightHash)
		}

	case "stats":
		stats := store.Stats()
		fmt.Fprintf(out, "stats tokens=%d staged=%d pool=%d\n", stats.Tokens, stats.Staged, stats.PoolLen)

	default:
		return fmt.Errorf("unknown verb %q", verb)
	}
	return nil
}

func dashStr(s string) string {
	if s == "-" {
		return ""
	}
	return s
}

func dash(s string) hashfacade.Value {
	if s == "-" {
		return nil
	}
	return hashfacade.Str(s)
}
