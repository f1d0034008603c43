package topics

const (
	// Quotes de props raspadas
	PropQuotes = "prop_quotes"

	// DLQ
	PropQuotesDLQ = "prop_quotes_dlq"
)
