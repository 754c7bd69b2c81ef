package models

import "time"

// Checkpoint — именованный неизменяемый снимок всего набора данных.
// Data никогда не отдаётся наружу напрямую, только через Clone.
type Checkpoint struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Data      Dataset   `json:"-"`
}

// FieldChange — одно отличие в отслеживаемом поле спортсмена.
type FieldChange struct {
	Field    string `json:"field"`
	OldValue any    `json:"old_value"`
	NewValue any    `json:"new_value"`
}

// CompetitorDiff — изменения одного спортсмена между снимком и живыми данными.
type CompetitorDiff struct {
	CompetitorID int           `json:"competitor_id"`
	Name         string        `json:"name"`
	Changes      []FieldChange `json:"changes"`
}

// Diff — результат сравнения живого набора данных с чекпоинтом.
// Added: есть только в живом наборе; Removed: только в чекпоинте;
// Modified: в обоих, но хотя бы одно отслеживаемое поле различается.
type Diff struct {
	CheckpointID   string           `json:"checkpoint_id"`
	CheckpointName string           `json:"checkpoint_name"`
	Added          []Competitor     `json:"added"`
	Removed        []Competitor     `json:"removed"`
	Modified       []CompetitorDiff `json:"modified"`
	RingsAffected  []string         `json:"rings_affected"`
}
