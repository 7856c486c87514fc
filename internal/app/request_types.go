package app

import "github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/core"

// PostEntryRequest is the input for recording a journal entry.
type PostEntryRequest struct {
	SessionID string
	Form      core.EntryForm
}

// SummarizeRequest is the input for drafting a visit summary.
type SummarizeRequest struct {
	SessionID string
	Note      string
}
