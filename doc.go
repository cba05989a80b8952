// Package tradelens reconstructs portfolio analytics from a raw trade ledger
// and a portfolio valuation series. It is a pure computation library: all
// inputs are in-memory arrays supplied by the caller, all outputs are freshly
// built value objects, and every run is a full deterministic replay.
//
// The core functionalities include:
//   - Ledger Normalization: canonicalizing trade records that arrive in
//     arbitrary, heterogeneous field shapes into a single immutable,
//     chronologically ordered ledger.
//   - Cost Basis Matching: replaying the ledger to maintain per-instrument
//     running average cost (FIFO lots are available as an alternative) and to
//     emit one realized profit-and-loss outcome per sell.
//   - Position Reconstruction: deriving how many instruments were concurrently
//     held on any date, without any persisted position snapshot.
//   - Drawdown Tracking: computing the running-peak and drawdown series from
//     the portfolio valuation series.
//   - Risk Score Normalization: mapping heterogeneous risk ratios (Sharpe,
//     Sortino, Calmar, volatility, max drawdown, win rate) onto a common
//     0-100 scale for side-by-side comparison.
//   - Period Aggregation: bucketing daily results into calendar-month
//     summaries with trade counts and win rates.
//
// This package serves as the foundational logic for the `tlens` command-line
// tool; the engine itself never fails a run, degrading instead to best-effort
// results carried alongside advisory warnings.
package tradelens
