// Package market implements the broader-market watchers: hot meme chart
// movers, fresh token launches, and NFT floor price moves.
package market
