// ════════════════════════════════════════════════════════════════════════════════════════════════
// SQLite-backed fact store
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Natural-Logic Search Engine
// Component: Persistent FactDB
//
// Description:
//   Durable premise store on top of go-sqlite3, following main.go's
//   openDatabase/loadPoolsFromDatabase style: open once, load everything
//   into an in-memory Trie for the hot query path, and write new facts
//   through to both the table and the index.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package factdb

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/naturalli/synsearch/lex"
)

// SQLiteFactDB is a kb.FactDB backed by a SQLite facts table, mirrored
// into an in-memory Trie for lookups.
type SQLiteFactDB struct {
	db    *sql.DB
	index *Trie
}

// OpenSQLite opens (creating if absent) the facts table at path and loads
// every stored premise into the in-memory index.
func OpenSQLite(path string) (*SQLiteFactDB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("factdb: open %s: %w", path, err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS facts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tokens TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("factdb: create schema: %w", err)
	}

	s := &SQLiteFactDB{db: db, index: NewTrie()}
	if err := s.loadAll(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteFactDB) loadAll() error {
	rows, err := s.db.Query(`SELECT tokens FROM facts`)
	if err != nil {
		return fmt.Errorf("factdb: load facts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var csv string
		if err := rows.Scan(&csv); err != nil {
			return fmt.Errorf("factdb: scan fact row: %w", err)
		}
		tokens, err := decodeTokens(csv)
		if err != nil {
			return err
		}
		s.index.Add(tokens, len(tokens))
	}
	return rows.Err()
}

func encodeTokens(tokens []lex.Word, length int) string {
	parts := make([]string, length)
	for i := 0; i < length; i++ {
		parts[i] = strconv.FormatUint(uint64(tokens[i]), 10)
	}
	return strings.Join(parts, ",")
}

func decodeTokens(csv string) ([]lex.Word, error) {
	if csv == "" {
		return nil, nil
	}
	fields := strings.Split(csv, ",")
	tokens := make([]lex.Word, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("factdb: malformed token %q: %w", f, err)
		}
		tokens[i] = lex.NewWord(uint32(v))
	}
	return tokens, nil
}

// AddFact persists tokens[:length] as a premise and updates the index.
func (s *SQLiteFactDB) AddFact(tokens []lex.Word, length int) error {
	if _, err := s.db.Exec(`INSERT INTO facts (tokens) VALUES (?)`, encodeTokens(tokens, length)); err != nil {
		return fmt.Errorf("factdb: insert fact: %w", err)
	}
	s.index.Add(tokens, length)
	return nil
}

// AddValidInsertion delegates to the in-memory index; insertion licenses
// are query-time metadata, not persisted facts.
func (s *SQLiteFactDB) AddValidInsertion(word lex.Word, edgeType lex.EdgeType) {
	s.index.AddValidInsertion(word, edgeType)
}

// Contains implements kb.FactDB.
func (s *SQLiteFactDB) Contains(hash uint64, tokens []lex.Word, length int) bool {
	return s.index.Contains(hash, tokens, length)
}

// CompletionsFor implements kb.FactDB.
func (s *SQLiteFactDB) CompletionsFor(tokens []lex.Word, length int, outCompletions []lex.Word, outEdges []lex.EdgeType) (int, bool) {
	return s.index.CompletionsFor(tokens, length, outCompletions, outEdges)
}

// Close releases the underlying database handle.
func (s *SQLiteFactDB) Close() error {
	return s.db.Close()
}
