// Package ingest turns conversation turns into episodic memory records.
package ingest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/agentops/recall/internal/importance"
	"github.com/agentops/recall/internal/keywords"
	"github.com/agentops/recall/internal/models"
)

// Content shorter than this is noise, rejected without a record.
const minContentLen = 20

// Storer is the slice of the memory facade ingestion consumes.
type Storer interface {
	Store(req *models.StoreRequest) (*models.StoreResponse, error)
}

// Ingestor scores and stores conversation turns.
type Ingestor struct {
	svc    Storer
	logger *slog.Logger
}

func NewIngestor(svc Storer, logger *slog.Logger) *Ingestor {
	return &Ingestor{svc: svc, logger: logger}
}

// IngestTurn stores one conversation turn as an episodic record. Turns below
// the length floor are skipped: empty ID, nil error, no record created.
func (i *Ingestor) IngestTurn(content, role, sessionID string) (string, error) {
	if len(content) < minContentLen {
		return "", nil
	}

	resp, err := i.svc.Store(&models.StoreRequest{
		Content:    fmt.Sprintf("[%s] %s", role, content),
		MemoryType: models.MemoryTypeEpisodic,
		Importance: importance.Estimate(content, role),
		Entities:   keywords.ExtractEntities(content),
		SessionID:  sessionID,
		Metadata: map[string]any{
			"role":        role,
			"ingested_at": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("ingest turn: %w", err)
	}
	return resp.ID, nil
}

type transcriptTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// IngestTranscript processes a whole transcript and returns the number of
// turns that produced records. The transcript is either a JSON array of
// {role, content} objects or plain text with "user:" / "assistant:" /
// "agent:" line prefixes (unprefixed lines default to user).
func (i *Ingestor) IngestTranscript(data []byte, sessionID string) (int, error) {
	var turns []transcriptTurn
	if err := json.Unmarshal(data, &turns); err == nil {
		return i.ingestTurns(turns, sessionID)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		role, text := "user", line
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "user:"):
			text = strings.TrimSpace(line[5:])
		case strings.HasPrefix(lower, "assistant:"):
			role, text = "assistant", strings.TrimSpace(line[10:])
		case strings.HasPrefix(lower, "agent:"):
			role, text = "assistant", strings.TrimSpace(line[6:])
		}
		if text != "" {
			turns = append(turns, transcriptTurn{Role: role, Content: text})
		}
	}
	return i.ingestTurns(turns, sessionID)
}

func (i *Ingestor) ingestTurns(turns []transcriptTurn, sessionID string) (int, error) {
	count := 0
	for _, t := range turns {
		if t.Content == "" {
			continue
		}
		id, err := i.IngestTurn(t.Content, t.Role, sessionID)
		if err != nil {
			return count, err
		}
		if id != "" {
			count++
		}
	}

	i.logger.Debug("transcript ingested", "turns", len(turns), "stored", count)
	return count, nil
}
