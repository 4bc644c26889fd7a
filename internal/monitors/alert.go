package monitors

// Alert kinds raised by the realtime cycle.
const (
	KindWallet     = "wallet"
	KindLiquidity  = "liquidity"
	KindPriceRange = "price_range"
	KindMemeChart  = "meme_chart"
	KindTGE        = "tge"
	KindNFTFloor   = "nft_floor"
)

// Alert is one realtime finding. The workflow batches all alerts from a
// pass into a single notification.
type Alert struct {
	Kind   string
	Title  string
	Detail string
}
