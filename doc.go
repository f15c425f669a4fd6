// Package futures computes point-in-time portfolio reports for a futures
// trading account: open positions, mark-to-market valuation, and profit and
// loss split into daily, month-to-date and year-to-date windows, each
// decomposed into realized and unrealized components.
//
// The pipeline has three stages:
//   - Fact building: the trade history is joined against the contract and
//     instrument reference tables, and every trading day up to the reporting
//     date receives an as-of settlement price (forward-filled across calendar
//     gaps).
//   - Daily P&L: a per-ticker scan in date order carries the cumulative
//     contract count and splits each day's P&L into the move on contracts
//     already held and the P&L on the day's own executions.
//   - Aggregation: the per-day table is rolled up into the reporting windows
//     at a caller-chosen level (asset class, instrument, or contract), with
//     realized and unrealized columns that always reconcile across levels.
//
// Every stage is a pure function of the four reference tables and the
// reporting date: nothing is persisted, no input is mutated, and concurrent
// report requests share nothing but the immutable reference data. Reference
// data is injected through the Provider interface; a CSV-backed loader and an
// in-memory implementation are included.
//
// This package is the foundation of the `frp` command-line tool and the
// report HTTP service.
package futures
