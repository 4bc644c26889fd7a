// Package magiceden wraps the Magic Eden collection stats API used by the
// NFT floor monitor.
package magiceden
