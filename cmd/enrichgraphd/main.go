// Command enrichgraphd is a small demo service: it wires a FlagStore, a
// Graph, an Emitter, and a ledger Store end to end, then runs one record
// through the graph and prints the result.
package main

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/enrichgraph-go/flagstore"
	"github.com/dshills/enrichgraph-go/graph"
	"github.com/dshills/enrichgraph-go/graph/emit"
	"github.com/dshills/enrichgraph-go/graph/ledger"
)

func main() {
	var (
		ledgerPath = flag.String("ledger", "enrichgraph.db", "path to the SQLite ledger file")
		jsonLogs   = flag.Bool("json-logs", false, "emit observability events as JSON lines instead of text")
		runBudget  = flag.Duration("run-budget", 10*time.Second, "wall-clock budget for one run; exceeding it without cycle-free completion raises ErrCycleSuspected")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	flags := flagstore.New()
	if err := flags.Start(ctx); err != nil {
		log.Fatalf("enrichgraphd: start flagstore: %v", err)
	}

	store, err := ledger.NewSQLiteStore(*ledgerPath)
	if err != nil {
		log.Fatalf("enrichgraphd: open ledger: %v", err)
	}
	defer store.Close()

	emitter := emit.NewLogEmitter(os.Stdout, *jsonLogs)
	g := buildDemoGraph(emitter)

	record := map[string]any{
		"id":   "rec-001",
		"text": "Quarterly revenue grew 12% year over year, driven by cloud subscriptions.",
	}

	runID := uuid.NewString()
	start := time.Now()
	metrics, output, err := g.RunDiagnosingCycles(ctx, record, flags, *runBudget)
	if errors.Is(err, graph.ErrCycleSuspected) {
		log.Fatalf("enrichgraphd: run did not complete within %s, suspected cycle: %v", *runBudget, err)
	}
	if err != nil {
		log.Fatalf("enrichgraphd: run failed: %v", err)
	}
	result := graph.RunResult{RunID: runID, Metrics: metrics, Output: output, Duration: time.Since(start)}

	if err := recordRun(ctx, store, result, record); err != nil {
		log.Printf("enrichgraphd: ledger record failed: %v", err)
	}

	fmt.Println("output:")
	printJSON(result.Output)
	fmt.Println("metrics:")
	printJSON(result.Metrics)
}

// buildDemoGraph attaches a three-node chain exercising a feature flag and
// a predicate, so a reader can see both gating mechanisms in one small run.
func buildDemoGraph(emitter emit.Emitter) *graph.Graph {
	g := graph.New(graph.WithEmitter(emitter), graph.WithMaxConcurrent(4))

	wordCount := graph.NewNode("word_count", nil, graph.WithWork(func(_ context.Context, record, output map[string]any) error {
		text, _ := record["text"].(string)
		output["word_count"] = len(splitWords(text))
		return nil
	}))

	lengthFlag := graph.NewNode("length_classification", []*graph.Node{wordCount},
		graph.WithFeatureFlag("length_classification"),
		graph.WithWork(func(_ context.Context, _, output map[string]any) error {
			count, _ := output["word_count"].(int)
			if count > 20 {
				output["length_class"] = "long"
			} else {
				output["length_class"] = "short"
			}
			return nil
		}),
	)

	graph.NewNode("long_form_notice", []*graph.Node{lengthFlag},
		graph.WithPredicate(func(_, output map[string]any) bool {
			return output["length_class"] == "long"
		}),
		graph.WithWork(func(_ context.Context, _, output map[string]any) error {
			output["notice"] = "flagged for long-form review"
			return nil
		}),
	)

	g.Attach(wordCount)
	return g
}

func recordRun(ctx context.Context, store ledger.Store, result graph.RunResult, record map[string]any) error {
	outputJSON, err := json.Marshal(result.Output)
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	metricsJSON, err := json.Marshal(result.Metrics)
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	hash := sha256.Sum256(recordJSON)
	return store.Record(ctx, ledger.Run{
		RunID:       result.RunID,
		RecordHash:  fmt.Sprintf("sha256:%x", hash),
		OutputJSON:  outputJSON,
		MetricsJSON: metricsJSON,
		Duration:    result.Duration,
		CompletedAt: time.Now(),
	})
}

func splitWords(s string) []string {
	var words []string
	start := -1
	for i, r := range s {
		if r == ' ' || r == '\n' || r == '\t' {
			if start >= 0 {
				words = append(words, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, s[start:])
	}
	return words
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("  <unmarshalable: %v>\n", err)
		return
	}
	fmt.Println(string(data))
}
