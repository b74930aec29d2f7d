package dict

import (
	"sync/atomic"
)

// ClientStats contains statistics about session operations.
// All fields are safe for concurrent access.
//
// For Prometheus integration, expose these as:
//   - Counters: Commands, DatabaseLists, StrategyLists, Matches, Defines, Errors
//   - Counter: Definitions (derive definitions per lookup as Definitions/Defines)
type ClientStats struct {
	Commands      uint64 // Command lines written, QUIT excluded
	DatabaseLists uint64 // SHOW DB exchanges (cache hits are not counted)
	StrategyLists uint64 // SHOW STRAT exchanges
	Matches       uint64 // Successful MATCH exchanges
	Defines       uint64 // Successful DEFINE exchanges
	Definitions   uint64 // Definitions received
	Errors        uint64 // Failed operations
}

// clientStatsCollector provides internal methods for updating client stats.
// Not exported - client updates its own stats.
type clientStatsCollector struct {
	stats *ClientStats
}

func newClientStatsCollector() *clientStatsCollector {
	return &clientStatsCollector{
		stats: &ClientStats{},
	}
}

func (c *clientStatsCollector) recordCommand() {
	atomic.AddUint64(&c.stats.Commands, 1)
}

func (c *clientStatsCollector) recordDatabaseList() {
	atomic.AddUint64(&c.stats.DatabaseLists, 1)
}

func (c *clientStatsCollector) recordStrategyList() {
	atomic.AddUint64(&c.stats.StrategyLists, 1)
}

func (c *clientStatsCollector) recordMatch() {
	atomic.AddUint64(&c.stats.Matches, 1)
}

func (c *clientStatsCollector) recordDefine(definitions int) {
	atomic.AddUint64(&c.stats.Defines, 1)
	atomic.AddUint64(&c.stats.Definitions, uint64(definitions))
}

func (c *clientStatsCollector) recordError() {
	atomic.AddUint64(&c.stats.Errors, 1)
}

func (c *clientStatsCollector) snapshot() ClientStats {
	return ClientStats{
		Commands:      atomic.LoadUint64(&c.stats.Commands),
		DatabaseLists: atomic.LoadUint64(&c.stats.DatabaseLists),
		StrategyLists: atomic.LoadUint64(&c.stats.StrategyLists),
		Matches:       atomic.LoadUint64(&c.stats.Matches),
		Defines:       atomic.LoadUint64(&c.stats.Defines),
		Definitions:   atomic.LoadUint64(&c.stats.Definitions),
		Errors:        atomic.LoadUint64(&c.stats.Errors),
	}
}
