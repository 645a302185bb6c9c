// ════════════════════════════════════════════════════════════════════════════════════════════════
// synsearch-demo — single-query command-line driver
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Natural-Logic Search Engine
// Component: Command-Line Entry Point
//
// Description:
//   Phased bootstrap in main.go's style: load the knowledge base, load
//   the query, run the search, report the result. No reconnection loop
//   here — a single query per process, unlike the teacher's always-on
//   event stream.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package main

import (
	"flag"
	"os"
	"strconv"

	"github.com/naturalli/synsearch"
	"github.com/naturalli/synsearch/diag"
	"github.com/naturalli/synsearch/engineconfig"
	"github.com/naturalli/synsearch/factdb"
	"github.com/naturalli/synsearch/kb"
	"github.com/naturalli/synsearch/mutationgraph"
	"github.com/naturalli/synsearch/tree"
	"github.com/naturalli/synsearch/weightmodel"
)

func main() {
	configPath := flag.String("config", "", "engineconfig JSON bootstrap file")
	queryPath := flag.String("query", "", "CoNLL-style query file (word governor relation per line)")
	flag.Parse()

	if *configPath == "" || *queryPath == "" {
		diag.Stage("USAGE", "synsearch-demo -config kb.json -query query.conll")
		os.Exit(2)
	}

	// PHASE 0: load configuration and knowledge base.
	diag.Stage("INIT", "loading configuration")
	cfg, err := engineconfig.Load(*configPath)
	if err != nil {
		diag.Abort("CONFIG_ERROR", err)
		os.Exit(1)
	}

	graph, err := loadGraph(cfg.GraphPath)
	if err != nil {
		diag.Abort("GRAPH_ERROR", err)
		os.Exit(1)
	}

	facts, closeFacts, err := loadFactDB(cfg.FactDBPath)
	if err != nil {
		diag.Abort("FACTDB_ERROR", err)
		os.Exit(1)
	}
	defer closeFacts()

	weights := weightmodel.NewDefault()
	diag.Stage("READY", "knowledge base loaded")

	// PHASE 1: parse the query tree.
	queryBytes, err := os.ReadFile(*queryPath)
	if err != nil {
		diag.Abort("QUERY_ERROR", err)
		os.Exit(1)
	}
	t, err := tree.ParseConLL(string(queryBytes))
	if err != nil {
		diag.Abort("QUERY_PARSE_ERROR", err)
		os.Exit(1)
	}

	// PHASE 2: run the search.
	opts := cfg.Options()
	resp, err := synsearch.SynSearch(graph, facts, weights, t, opts)
	if err != nil {
		diag.Abort("SEARCH_ERROR", err)
		os.Exit(1)
	}

	diag.Stage("RESULT", resp.Termination.String())
	for i, path := range resp.Paths {
		diag.Stage("PATH", strconv.Itoa(i)+": "+synsearch.ExplainPath(graph, path))
	}
}

func loadGraph(path string) (kb.MutationGraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return mutationgraph.LoadJSON(data)
}

func loadFactDB(path string) (kb.FactDB, func(), error) {
	if path == "" {
		return factdb.NewTrie(), func() {}, nil
	}
	db, err := factdb.OpenSQLite(path)
	if err != nil {
		return nil, func() {}, err
	}
	return db, func() { db.Close() }, nil
}
