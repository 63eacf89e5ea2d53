package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/patchbay"
	"github.com/aretw0/patchbay/internal/presentation/graph"
	"github.com/aretw0/patchbay/internal/presentation/tree"
	"github.com/aretw0/patchbay/internal/presentation/tui"
	"github.com/aretw0/patchbay/pkg/domain"
	"github.com/aretw0/patchbay/pkg/sessionfile"
	"github.com/aretw0/patchbay/pkg/snapshot"
)

var gatherCmd = &cobra.Command{
	Use:   "gather",
	Short: "Classify a session's ports and print the result",
	Long: `Gathers every port the session can reach, classifies the resulting
bundles into groups and prints them. The output format defaults to a
colored tree on a TTY and plain text when piped.`,
	Run: func(cmd *cobra.Command, args []string) {
		sessionPath, _ := cmd.Flags().GetString("session")
		if sessionPath == "" && len(args) > 0 {
			sessionPath = args[0]
		}
		dirFlag, _ := cmd.Flags().GetString("direction")
		typeFlag, _ := cmd.Flags().GetString("type")
		format, _ := cmd.Flags().GetString("format")
		watchMode, _ := cmd.Flags().GetBool("watch")

		if sessionPath == "" {
			fmt.Println("Error: a session file is required (--session)")
			os.Exit(1)
		}

		dir, err := domain.ParseDirection(dirFlag)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		filter, err := domain.ParseDataType(typeFlag)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		if watchMode {
			runGatherWatch(sessionPath, dir, filter, format)
			return
		}

		out, err := gatherOnce(sessionPath, dir, filter, format)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(gatherCmd)

	gatherCmd.Flags().StringP("direction", "d", "input", "Side of the matrix to list: input or output")
	gatherCmd.Flags().StringP("type", "t", "any", "Restrict to one data type: audio, midi or any")
	gatherCmd.Flags().StringP("format", "f", "tree", "Output format: tree, json, markdown or mermaid")
	gatherCmd.Flags().BoolP("watch", "w", false, "Re-gather whenever the session file changes")
}

func gatherOnce(path string, dir domain.Direction, filter domain.DataType, format string) (string, error) {
	session, err := sessionfile.Load(path)
	if err != nil {
		return "", err
	}

	eng, err := patchbay.New(session, patchbay.WithTypeFilter(filter))
	if err != nil {
		return "", err
	}
	eng.Rebuild(context.Background())

	return renderSnapshot(eng.Snapshot(dir), format)
}

func renderSnapshot(snap *snapshot.Snapshot, format string) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil

	case "markdown":
		md := tree.Markdown(snap)
		if !stdoutIsTTY() {
			return md, nil
		}
		render := tui.NewRenderer()
		out, err := render(md)
		if err != nil {
			return md, nil
		}
		return out, nil

	case "mermaid":
		return graph.GenerateMermaid(snap), nil

	case "tree":
		profile := termenv.Ascii
		if stdoutIsTTY() {
			profile = termenv.ColorProfile()
		}
		return tree.Render(snap, profile), nil

	default:
		return "", fmt.Errorf("unknown format %q (expected tree, json, markdown or mermaid)", format)
	}
}

func stdoutIsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func runGatherWatch(path string, dir domain.Direction, filter domain.DataType, format string) {
	tui.PrintBanner(patchbay.Version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	events, err := sessionfile.Watch(ctx, path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	render := func() {
		out, err := gatherOnce(path, dir, filter, format)
		if err != nil {
			// Keep watching; a half-saved file often parses badly once.
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Print(out)
		fmt.Println("\nWaiting for changes... (Ctrl+C to stop)")
	}
	render()

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nStopping watcher")
			return
		case name, ok := <-events:
			if !ok {
				return
			}
			fmt.Printf("\nChange detected in '%s'.\n", name)
			// Delay slightly to ensure the file system is stable
			time.Sleep(100 * time.Millisecond)
			render()
		}
	}
}
