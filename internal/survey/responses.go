package survey

// Responses maps question keys to answers. Values are either a string for a
// single-select question or a []string for a multi-select one. Every accessor
// defaults to the empty answer so readers never fail on missing keys.
type Responses map[Key]any

// Single returns the answer of a single-select question, or "" when absent.
func (r Responses) Single(key Key) string {
	switch v := r[key].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

// Multi returns the answers of a multi-select question, or nil when absent.
// Answers are a set: repeated values are returned once, in first-seen order.
// A single string answer is returned as a one-element slice.
func (r Responses) Multi(key Key) []string {
	switch v := r[key].(type) {
	case []string:
		return dedupe(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return dedupe(out)
	case string:
		if v != "" {
			return []string{v}
		}
	}
	return nil
}

// Has reports whether an answer was recorded for key.
func (r Responses) Has(key Key) bool {
	_, ok := r[key]
	return ok
}

// Clone returns a deep copy of the responses.
func (r Responses) Clone() Responses {
	out := make(Responses, len(r))
	for key, value := range r {
		if values, ok := value.([]string); ok {
			out[key] = append([]string(nil), values...)
			continue
		}
		out[key] = value
	}
	return out
}

// Knowledge, Job, Interests, Purposes and Difficulty are shorthands for the fixed questions.
func (r Responses) Knowledge() string   { return r.Single(KeyKnowledge) }
func (r Responses) Job() string         { return r.Single(KeyJob) }
func (r Responses) Interests() []string { return r.Multi(KeyInterest) }
func (r Responses) Purposes() []string  { return r.Multi(KeyPurpose) }
func (r Responses) Difficulty() string  { return r.Single(KeyDifficulty) }
