package task

// Record is the storage form of a Task. Every field is always written;
// absent optional values are null.
type Record struct {
	ID          *int    `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description" yaml:"description"`
	Deadline    *string `json:"deadline" yaml:"deadline"`
	Priority    string  `json:"priority" yaml:"priority"`
	Completed   bool    `json:"completed" yaml:"completed"`
	CreatedAt   *string `json:"created_at" yaml:"created_at"`
	CompletedAt *string `json:"completed_at" yaml:"completed_at"`
}

// Serialize converts the task to its storage record.
func (t *Task) Serialize() Record {
	r := Record{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority.String(),
		Completed:   t.Completed,
	}
	if t.ID != 0 {
		id := t.ID
		r.ID = &id
	}
	if t.Deadline != nil {
		r.Deadline = stringPtr(t.Deadline.String())
	}
	if s := t.CreatedAt.String(); s != "" {
		r.CreatedAt = &s
	}
	if t.CompletedAt != nil {
		r.CompletedAt = stringPtr(t.CompletedAt.String())
	}
	if !t.Priority.Valid() {
		r.Priority = DefaultPriority.String()
	}
	return r
}

// Deserialize rebuilds a task from a record. Missing fields take their
// defaults. Dates and timestamps are not validated: text that does not
// parse is kept as-is. An unknown priority becomes DefaultPriority.
func Deserialize(r Record) *Task {
	t := &Task{
		Title:       r.Title,
		Description: r.Description,
		Priority:    NormalizePriority(r.Priority),
		Completed:   r.Completed,
	}
	if r.ID != nil {
		t.ID = *r.ID
	}
	if r.Deadline != nil && *r.Deadline != "" {
		d := looseDate(*r.Deadline)
		t.Deadline = &d
	}
	if r.CreatedAt != nil {
		t.CreatedAt = looseTimestamp(*r.CreatedAt)
	}
	if r.CompletedAt != nil && *r.CompletedAt != "" {
		ts := looseTimestamp(*r.CompletedAt)
		t.CompletedAt = &ts
	}
	return t
}

func stringPtr(s string) *string {
	return &s
}
