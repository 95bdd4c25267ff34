package console

// Tab is one of the console's three flat views. There is no workflow between
// them; the user jumps directly.
type Tab string

const (
	// TabPending shows products and offers awaiting moderation, in two
	// independently paginated sections.
	TabPending Tab = "pending"
	// TabAll shows the whole catalog with status/search/ordering filters.
	TabAll Tab = "all"
	// TabMine shows products created by the signed-in moderator.
	TabMine Tab = "mine"
)

func ParseTab(s string) Tab {
	switch Tab(s) {
	case TabAll:
		return TabAll
	case TabMine:
		return TabMine
	default:
		return TabPending
	}
}
