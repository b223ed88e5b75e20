// Package fincalc is the financial-calculation core of a portfolio-tracking
// backend. Given a time-ordered list of buy/sell transactions and price
// data, it computes:
//
//   - an annualized money-weighted rate of return (XIRR), damped against
//     short-window distortion and clamped to a displayable range, with a
//     rolling-window trend variant;
//   - FIFO lot-matched realized and unrealized profit, average cost basis
//     and remaining quantity per transaction, grouped by
//     (platform, instrument);
//   - per-instrument and portfolio summaries composed from both.
//
// The package is a pure computation library: it fetches nothing, persists
// nothing and holds no state across calls. Every operation is safe to call
// concurrently for independent inputs; BatchProcessor is provided for
// callers that fan recomputation out across many units with per-unit
// failure capture.
//
// All accounting arithmetic is exact (shopspring/decimal wrapped in the
// Quantity and Money value types); only the root-finding solver works in
// float64.
package fincalc
