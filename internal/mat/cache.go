package mat

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// QueryCache memoizes membership answers so that a pure teacher never
// answers the same query twice with different results (spec.md §5: "memory
// is bounded by |U|·|E| membership answers; implementations must cache
// answers to avoid re-querying", and spec.md §7's teacher-inconsistency
// error kind, which caching exists to make structurally impossible).
type QueryCache interface {
	Get(word string) (member bool, ok bool)
	Put(word string, member bool)
}

// MemCache is an in-process, map-backed QueryCache. The zero value is not
// ready to use; construct with NewMemCache.
type MemCache struct {
	answers map[string]bool
}

// NewMemCache returns an empty in-memory QueryCache.
func NewMemCache() *MemCache {
	return &MemCache{answers: map[string]bool{}}
}

func (c *MemCache) Get(word string) (bool, bool) {
	member, ok := c.answers[word]
	return member, ok
}

func (c *MemCache) Put(word string, member bool) {
	c.answers[word] = member
}

// SQLiteCache is a QueryCache backed by a sqlite database, for persisting
// membership answers across learner runs (SPEC_FULL.md §2.1's checkpoint
// addition). Grounded on the teacher's server/dao/sqlite package's use of
// modernc.org/sqlite as a pure-Go driver with no cgo dependency.
type SQLiteCache struct {
	db *sql.DB
}

// OpenSQLiteCache opens (creating if necessary) a sqlite-backed QueryCache
// at path.
func OpenSQLiteCache(path string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening query cache %q: %w", path, err)
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS membership_answers (
			word TEXT PRIMARY KEY,
			member INTEGER NOT NULL
		)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing query cache schema: %w", err)
	}

	return &SQLiteCache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

func (c *SQLiteCache) Get(word string) (bool, bool) {
	var member int
	err := c.db.QueryRow(`SELECT member FROM membership_answers WHERE word = ?`, word).Scan(&member)
	if err != nil {
		return false, false
	}
	return member != 0, true
}

func (c *SQLiteCache) Put(word string, member bool) {
	memberInt := 0
	if member {
		memberInt = 1
	}
	// Last write wins: a later Put for the same word replaces the stored
	// answer without comparing it to the earlier one. GrammarMAT only calls
	// Put after a cache miss.
	_, _ = c.db.Exec(`INSERT OR REPLACE INTO membership_answers (word, member) VALUES (?, ?)`, word, memberInt)
}
