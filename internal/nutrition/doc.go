// Package nutrition resolves food references into absolute nutrient totals,
// composes recipes from ingredient references, records consumption and
// aggregates the ledger into daily totals.
//
// Every component receives its Store at construction; nothing in the package
// holds a global connection.
package nutrition
