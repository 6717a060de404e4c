// Command chunkfile chunks a single file and prints the resulting chunk
// table and statistics. It is a debugging aid for tuning chunking
// configuration; nothing is persisted.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/charmbracelet/log"

	"github.com/dshills/docchunk-mcp/internal/enricher"
	"github.com/dshills/docchunk-mcp/internal/pipeline"
	"github.com/dshills/docchunk-mcp/pkg/types"
)

func main() {
	maxSize := flag.Int("max-size", types.DefaultMaxChunkSize, "max chunk size in characters (includes metadata overhead)")
	minSize := flag.Int("min-size", types.DefaultMinChunkSize, "soft minimum chunk size in characters")
	overlap := flag.Int("overlap", types.DefaultOverlapPercentage, "overlap percentage (0-100)")
	overhead := flag.Int("overhead", types.DefaultMetadataOverhead, "characters reserved per chunk for metadata")
	smart := flag.Bool("smart", false, "enable semantic enrichment via the configured provider")
	flat := flag.Bool("flat", false, "disable protected-region detection (code fences, tables)")
	showContent := flag.Bool("content", false, "print full chunk content")
	asJSON := flag.Bool("json", false, "emit chunks as JSON instead of a table")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <file>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
		os.Exit(2)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "chunkfile"})

	path := flag.Arg(0)
	content, err := os.ReadFile(path)
	if err != nil {
		logger.Fatal("failed to read file", "path", path, "err", err)
	}

	cfg := types.ChunkingConfig{
		MaxChunkSize:       *maxSize,
		MinChunkSize:       *minSize,
		OverlapPercentage:  *overlap,
		UseSmartBoundaries: *smart,
		PreserveStructure:  !*flat,
		MetadataOverhead:   *overhead,
	}

	var enr enricher.Enricher
	if *smart {
		enr, err = enricher.NewFromEnv()
		if err != nil {
			logger.Fatal("failed to configure enrichment", "err", err)
		}
		defer func() { _ = enr.Close() }()
	}

	pipe, err := pipeline.New(cfg, nil, enr, logger)
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}

	result, err := pipe.Process(context.Background(), pipeline.Document{
		ID:      filepath.Base(path),
		Source:  path,
		Content: string(content),
	}, nil)
	if err != nil {
		logger.Fatal("chunking failed", "err", err)
	}

	if *asJSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			logger.Fatal("failed to encode result", "err", err)
		}
		fmt.Println(string(out))
		return
	}

	printTable(result, *showContent)
	printStats(result.Stats)
}

func printTable(result *pipeline.Result, showContent bool) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "IDX\tID\tSTART\tEND\tSIZE\tWORDS\tOVERLAP<\tOVERLAP>\tFLAGS")
	for _, c := range result.Chunks {
		md := c.Metadata
		flags := ""
		if md.HasCodeBlocks {
			flags += "C"
		}
		if md.HasTables {
			flags += "T"
		}
		if md.HasLists {
			flags += "L"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%s\n",
			c.Index, c.ID, c.StartChar, c.EndChar, len(c.Content),
			md.WordCount, md.OverlapWithPrevious, md.OverlapWithNext, flags)
	}
	_ = w.Flush()

	if showContent {
		for _, c := range result.Chunks {
			fmt.Printf("\n--- chunk %d (%s) ---\n%s\n", c.Index, c.ID, c.Content)
		}
	}
}

func printStats(s types.ChunkingStats) {
	fmt.Printf("\nchunks: %d  avg: %.1f  min: %d  max: %d  overlap: %d (avg %.1f)\n",
		s.TotalChunks, s.AverageChunkSize, s.MinChunkSize, s.MaxChunkSize,
		s.TotalOverlap, s.AverageOverlap)
	fmt.Printf("headings: %d  code blocks: %d  tables: %d  lists: %d\n",
		s.HeadingCount, s.CodeBlockCount, s.TableCount, s.ListCount)
}
