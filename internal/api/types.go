package api

// Records decoded from PAM service responses. Decoding is whole-or-fail: a
// 2xx body that does not fit one of these shapes is a DecodeError, never a
// partially filled value.

// TableInfo describes one memory table on the service side.
type TableInfo struct {
	Name     string `json:"name"`
	RowCount int    `json:"row_count"`
}

// MemoryStatus summarizes the memory subsystem.
type MemoryStatus struct {
	Status       string      `json:"status"`
	TotalEntries int         `json:"total_entries"`
	Tables       []TableInfo `json:"tables"`
}

// MemorySearchResult is one semantic search hit.
type MemorySearchResult struct {
	ID         string   `json:"id"`
	Content    string   `json:"content"`
	Similarity float64  `json:"similarity"`
	Tags       []string `json:"tags"`
	CreatedAt  string   `json:"created_at"`
}

// MemoryEntry is one stored memory as returned by the list endpoint.
type MemoryEntry struct {
	ID        string   `json:"id"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	User      string   `json:"user"`
	CreatedAt string   `json:"created_at"`
}

// Skill describes one remotely executable skill.
type Skill struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	RiskLevel   string `json:"risk_level"`
	Enabled     bool   `json:"enabled"`
}

// SkillLogEntry is one recorded skill invocation.
type SkillLogEntry struct {
	Skill      string `json:"skill"`
	User       string `json:"user"`
	Status     string `json:"status"`
	DurationMS int    `json:"duration_ms"`
	Timestamp  string `json:"timestamp"`
	Error      string `json:"error,omitempty"`
}

// ContextFile is one context document tracked by the service.
type ContextFile struct {
	Name      string `json:"name"`
	SizeBytes int    `json:"size_bytes"`
	UpdatedAt string `json:"updated_at"`
	Stale     bool   `json:"stale"`
}

// ContextStatus is the context subsystem debug view.
type ContextStatus struct {
	Status   string        `json:"status"`
	Bucket   string        `json:"bucket"`
	Files    []ContextFile `json:"files"`
	LastSync string        `json:"last_sync"`
}

// RefreshResult reports a context refresh run.
type RefreshResult struct {
	Refreshed []string `json:"refreshed"`
	Skipped   []string `json:"skipped"`
	Errors    []string `json:"errors"`
}

// ContextStats aggregates usage counters for the context subsystem.
type ContextStats struct {
	TotalFiles     int            `json:"total_files"`
	TotalSizeBytes int            `json:"total_size_bytes"`
	ReadCounts     map[string]int `json:"read_counts"`
}

// Reflection is a generated end-of-day reflection.
type Reflection struct {
	WhatWorked  []string `json:"what_worked"`
	WhatFailed  []string `json:"what_failed"`
	Learnings   []string `json:"learnings"`
	ActionItems []string `json:"action_items"`
}
