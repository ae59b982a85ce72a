package domain

import "time"

// JournalVersion is the schema tag written with every stored journal document.
const JournalVersion = 1

// Journal is the full persisted state: every trade plus the tag vocabulary.
type Journal struct {
	Version   int       `json:"version"`
	Trades    []Trade   `json:"trades"`
	Tags      []string  `json:"tags"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewJournal returns an empty journal at the current schema version.
func NewJournal() Journal {
	return Journal{Version: JournalVersion, Trades: []Trade{}, Tags: []string{}}
}

// AddTrades appends trades whose ID is not already present and returns how many were added.
func (j *Journal) AddTrades(trades []Trade) int {
	seen := make(map[string]struct{}, len(j.Trades))
	for _, t := range j.Trades {
		seen[t.ID] = struct{}{}
	}
	added := 0
	for _, t := range trades {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		j.Trades = append(j.Trades, t)
		added++
	}
	return added
}

// ImportRecord is one entry of the import history.
type ImportRecord struct {
	Source      string
	Dialect     Dialect
	Trades      int
	Diagnostics int
	NetProfit   string
	ImportedAt  time.Time
}
