package common

const (
	ComponentIndexer      = "indexer"
	ComponentBlockHandler = "block-handler"
	ComponentEventHandler = "event-handler"
	ComponentLedgerClient = "ledger-client"
	ComponentStore        = "store"
	ComponentFollower     = "follower"
	ComponentMetrics      = "metrics"
)

var AllComponents = map[string]struct{}{
	ComponentIndexer:      {},
	ComponentBlockHandler: {},
	ComponentEventHandler: {},
	ComponentLedgerClient: {},
	ComponentStore:        {},
	ComponentFollower:     {},
	ComponentMetrics:      {},
}
