package walrus

// Endpoints holds the static publisher and aggregator lists for one Walrus
// network. Order is significant: consumers try index 0 first and fail over
// sequentially. The lists are never reordered at runtime.
type Endpoints struct {
	publishers  []string
	aggregators []string
}

// Testnet endpoints from the MystenLabs operator registry, ranked by
// observed reliability.
var testnetPublishers = []string{
	"https://publisher.walrus-testnet.walrus.space",
	"https://wal-publisher-testnet.staketab.org",
	"https://walrus-testnet-publisher.redundex.com",
	"https://walrus-testnet-publisher.nodes.guru",
	"https://walrus-testnet-publisher.stakin-nodes.com",
}

var testnetAggregators = []string{
	"https://aggregator.walrus-testnet.walrus.space",
	"https://wal-aggregator-testnet.staketab.org",
	"https://walrus-testnet-aggregator.redundex.com",
	"https://walrus-testnet.blockscope.net",
}

// TestnetEndpoints returns the default Walrus testnet endpoint set.
func TestnetEndpoints() *Endpoints {
	return NewEndpoints(testnetPublishers, testnetAggregators)
}

func NewEndpoints(publishers, aggregators []string) *Endpoints {
	return &Endpoints{
		publishers:  publishers,
		aggregators: aggregators,
	}
}

// Publishers returns the ordered write endpoints.
func (e *Endpoints) Publishers() []string {
	return e.publishers
}

// Aggregators returns the ordered read endpoints.
func (e *Endpoints) Aggregators() []string {
	return e.aggregators
}

// Canonical returns the deployment endpoint. Paid uploads do not fail over,
// they retry against this one publisher so the network cannot double-charge.
func (e *Endpoints) Canonical() string {
	return e.publishers[0]
}
