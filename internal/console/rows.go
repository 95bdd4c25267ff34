package console

// RowState is the transient UI state of one moderatable row, keyed by entity
// identity (moderation.Target.Key). It is created on first interaction,
// cleared on successful submit or explicit cancel, and discarded wholesale
// when the tab changes. Never persisted.
type RowState struct {
	FormOpen    bool   // rejection confirmation form is showing
	RejectDraft string // reason text typed so far
	InFlight    bool   // an action for this row is awaiting the backend
	Err         string // inline error next to the row's controls
}

func (c *Console) row(key string) *RowState {
	if st, ok := c.rows[key]; ok {
		return st
	}
	st := &RowState{}
	c.rows[key] = st
	return st
}
