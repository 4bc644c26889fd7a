// Package monitors implements the realtime watchers: tracked wallets,
// liquidity on watched tokens, and price range bands on the majors.
//
// Monitors keep their previous sample in memory and only ever raise
// alerts; nothing in this package places orders.
package monitors
