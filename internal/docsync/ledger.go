// Package docsync reconciles the vector store against a flat-text memory
// document: content-identity deduplicated import, high-value export.
package docsync

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// LedgerEntry records when a content identity was first imported and under
// which section header.
type LedgerEntry struct {
	Header   string `json:"header"`
	SyncedAt string `json:"synced_at"`
}

// Ledger maps content identities to their import provenance. It is the sole
// source of truth for import idempotence: once a key exists, the importer
// never creates a second record for it. Entries accrete over the ledger's
// lifetime and are never deleted.
//
// The ledger file is a critical resource: only one import process per ledger
// path may run at a time. This is an operating constraint, not enforced here.
type Ledger struct {
	path    string
	entries map[string]LedgerEntry
}

// LoadLedger reads the ledger at path. A missing or unreadable file yields an
// empty ledger — fresh-start semantics favor availability over strict
// consistency for a human-editable sync artifact.
func LoadLedger(path string) *Ledger {
	l := &Ledger{
		path:    path,
		entries: make(map[string]LedgerEntry),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return l
	}
	var entries map[string]LedgerEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return l
	}
	l.entries = entries
	return l
}

// Has reports whether the content identity was already imported.
func (l *Ledger) Has(contentID string) bool {
	_, ok := l.entries[contentID]
	return ok
}

// Add records a freshly imported content identity.
func (l *Ledger) Add(contentID, header string) {
	l.entries[contentID] = LedgerEntry{
		Header:   header,
		SyncedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// Len returns the number of imported content identities.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Save writes the full ledger atomically: temp file in the same directory,
// then rename. A crash mid-import therefore leaves either the previous
// ledger or the new one, never a torn file.
func (l *Ledger) Save() error {
	data, err := json.MarshalIndent(l.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}

	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write ledger temp file: %w", err)
	}
	if err := os.Rename(tmp, l.path); err != nil {
		return fmt.Errorf("replace ledger: %w", err)
	}
	return nil
}
