// Command flownode is a local harness for the Docintel nodes: it embeds the
// minimal host surface a node needs so descriptors can be inspected and
// single nodes exercised from the CLI without a workflow host.
//
//	flownode list
//	flownode run -node docintelDigitize -items items.jsonc -credentials creds.yaml
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/flowkit-plugins/docintel/adapter"
	"github.com/flowkit-plugins/docintel/host"
	_ "github.com/flowkit-plugins/docintel/nodes/all"
	"github.com/flowkit-plugins/docintel/observability"
)

func main() {
	// A missing .env is fine; explicit environment always wins.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "list":
		runList()
	case "run":
		runNode(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage:
  flownode list
  flownode run -node <name> -items <file> [flags]`)
}

func runList() {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(adapter.List()); err != nil {
		log.Fatalf("Failed to encode descriptors: %v", err)
	}
}

func runNode(args []string) {
	flags := pflag.NewFlagSet("run", pflag.ExitOnError)
	var (
		nodeName        = flags.String("node", "", "Node name to run (required, see `flownode list`)")
		itemsFile       = flags.String("items", "", "Path to a JSONC file holding the input items (required)")
		paramsFile      = flags.String("params", "", "Path to a JSONC file holding node parameters")
		credentialsFile = flags.String("credentials", "", "Path to a YAML credentials file")
		continueOnFail  = flags.Bool("continue-on-fail", false, "Capture per-item failures as error items")
		verbose         = flags.Bool("verbose", false, "Enable verbose logging to stderr")
	)
	if err := flags.Parse(args); err != nil {
		log.Fatalf("Failed to parse flags: %v", err)
	}

	if *nodeName == "" || *itemsFile == "" {
		usage()
		flags.PrintDefaults()
		os.Exit(1)
	}

	capability, err := adapter.Get(*nodeName)
	if err != nil {
		log.Fatalf("Unknown node: %v", err)
	}

	items, err := loadItems(*itemsFile)
	if err != nil {
		log.Fatalf("Failed to load items: %v", err)
	}

	params := map[string]any{}
	if *paramsFile != "" {
		if params, err = loadParams(*paramsFile); err != nil {
			log.Fatalf("Failed to load parameters: %v", err)
		}
	}

	credentials, err := loadCredentials(*credentialsFile)
	if err != nil {
		log.Fatalf("Failed to load credentials: %v", err)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	observer := observability.NewSlogObserver(logger)

	opts := []host.LocalOption{
		host.WithParameters(params),
		host.WithContinueOnFail(*continueOnFail),
	}
	for name, cred := range credentials {
		opts = append(opts, host.WithCredential(name, cred))
	}
	exec := host.NewLocal(items, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out, err := adapter.Run(ctx, exec, capability, observer)
	if err != nil {
		log.Fatalf("Node run failed: %v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}
}
