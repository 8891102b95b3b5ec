// Package assets is a multi-asset accounting ledger. It tracks any number of
// independently administered fungible asset classes: per-account balances,
// total supply, the deposits bonded for storage, delegated spending
// approvals and freeze state.
//
// The core functionalities include:
//   - Asset lifecycle: creating an asset class with its team of owner,
//     issuer, admin and freezer, and destroying it with every record it owns.
//   - Balances: minting, burning and transferring, with a minimum balance
//     below which an account is removed and its dust swept.
//   - Approvals: allowances a delegate can spend from an owner's balance.
//   - Metadata: name, symbol and decimals, paid for with a deposit.
//
// Every operation first checks, then writes. The checks read the current
// state and decide; the writes are staged in a write-set and committed in a
// single batch to a kv.Store. A failed operation changes nothing.
//
// The currency deposits are bonded in and the account reference counts are
// external services, see Currency and AccountRefs. Package native provides
// an implementation of both over the same store.
//
// This package serves as the foundational logic for the `assetctl`
// command-line tool.
package assets
