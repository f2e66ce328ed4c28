// Package session defines the frozen search context reused by follow-up
// questions. The engine writes a Context once per search and never mutates
// it afterwards; persistence is owned by the session repository.
package session

import (
	"time"

	"github.com/talent-cloud/resumedex/internal/domain/candidate"
)

// Context is the write-once record of a completed search.
type Context struct {
	ID           string            `json:"id"`
	Query        string            `json:"query"`
	Matches      []candidate.Match `json:"matches"`
	TotalResults int               `json:"total_results"`
	CreatedAt    time.Time         `json:"created_at"`
}
