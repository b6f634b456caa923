package events

// Topic constants for state changes emitted by the POS core.
const (
	TopicCatalogChanged = "catalog.changed"
	TopicSaleRecorded   = "sale.recorded"
)

// DefaultTopics returns the canonical list of emitted topics.
func DefaultTopics() []string {
	return []string{
		TopicCatalogChanged,
		TopicSaleRecorded,
	}
}
