// Package baskets aggregates the look-through holdings of a portfolio of
// fund positions: each ETF position is resolved into the constituent
// holdings its issuer publishes, weights become dollar amounts, and
// everything is consolidated into a single holdings table.
//
// The core is a small relational Table abstraction and three batch
// transforms built on it:
//   - the holdings contract: schema validation, column fixup and weight
//     renormalization of the raw tables issuer parsers produce,
//   - the pipeline: per-position resolution, provenance and dollar-amount
//     conversion, concatenation into one full table,
//   - the aggregator: grouping by security identity and asset class,
//     summing amounts, sorted for reporting.
//
// The pipeline performs no logging: every non-fatal finding is returned as a
// Diagnostic for the caller to render. The external collaborators, the
// flat-file download store and the per-issuer parsers, are injected as
// interfaces so the whole batch is testable without the network.
//
// This package is the foundation of the `bsk` command-line tool.
package baskets
