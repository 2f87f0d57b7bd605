// Package dividends records the dividends paid by stocks and the holdings
// that produce them, and analyzes that income.
//
// The Ledger is the single source of truth: dividend records, identified by
// symbol and ex-dividend date, and the current holdings. It is persisted as
// a JSONL file by a Store and can be fed from CSV files.
//
// Analytics never modify the ledger. An Analyzer reads a Snapshot of it and
// computes:
//   - aggregations of income by year, quarter, month or symbol,
//   - year over year growth, for the portfolio and per symbol,
//   - yield on cost, using the holdings cost basis,
//   - payment consistency and frequency of each symbol,
//   - projections of future income from a baseline and a growth scenario.
//
// Monetary values are exact decimals; the ledger holds a single currency,
// used only for display.
//
// This package is the foundation of the dvt command-line tool.
package dividends
