package utterance

// Patch carries only the fields sourced from a timestamp spreadsheet row.
// Applying a patch onto a previously persisted utterance overwrites exactly
// those fields and preserves everything else (transcript, paraphrases,
// topics, assigned asset paths, errorMessage), which makes the
// "what gets preserved on re-sync" contract an explicit function.
type Patch struct {
	Mentor            *string
	Question          *string
	UtteranceType     *Type
	Session           *int
	Part              *int
	TimeStart         *float64
	TimeEnd           *float64
	SessionTimestamps *string
	Transcript        *string
}

// ApplyTo returns a new utterance: a deep copy of prior with the patch's
// set fields overwritten. A nil prior starts from New().
func (p Patch) ApplyTo(prior *Utterance) *Utterance {
	var u *Utterance
	if prior != nil {
		u = prior.Clone()
	} else {
		u = New()
	}
	if p.Mentor != nil {
		u.Mentor = *p.Mentor
	}
	if p.Question != nil {
		u.Question = *p.Question
	}
	if p.UtteranceType != nil {
		u.UtteranceType = *p.UtteranceType
	}
	if p.Session != nil {
		u.Session = *p.Session
	}
	if p.Part != nil {
		u.Part = *p.Part
	}
	if p.TimeStart != nil {
		u.TimeStart = *p.TimeStart
	}
	if p.TimeEnd != nil {
		u.TimeEnd = *p.TimeEnd
	}
	if p.SessionTimestamps != nil {
		u.SessionTimestamps = *p.SessionTimestamps
	}
	if p.Transcript != nil {
		u.Transcript = *p.Transcript
	}
	return u
}

// String returns a pointer to s, for building patches.
func String(s string) *string { return &s }

// Int returns a pointer to n, for building patches.
func Int(n int) *int { return &n }

// Float returns a pointer to f, for building patches.
func Float(f float64) *float64 { return &f }

// TypeOf returns a pointer to t, for building patches.
func TypeOf(t Type) *Type { return &t }
