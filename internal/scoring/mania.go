package scoring

import "math"

// HolderStats summarizes the top-holder distribution of a token,
// typically taken from a RugCheck report.
type HolderStats struct {
	Top1Pct float64
	Top5Pct float64
	Known   bool
}

// SocialStats carries whatever social account figures are available.
// Zero AccountAgeDays means unknown.
type SocialStats struct {
	Followers      int
	Following      int
	Tweets         int
	EngagementRate float64
	AccountAgeDays int
	Known          bool
}

// ManiaResult is the breakdown produced by the mania scorer.
type ManiaResult struct {
	HolderQuality  float64
	SocialVelocity float64
	BotRisk        float64
	Total          float64
}

// HighBotRisk reports whether bot signals dominate the social picture.
func (m ManiaResult) HighBotRisk() bool {
	return m.BotRisk >= 60
}

// ManiaScore estimates how organic a token's attention is. Holder quality
// and social velocity each carry 45% of the total; the remaining 10% is the
// inverse of the bot risk. Unknown inputs land on neutral midpoints so a
// token is neither rewarded nor punished for missing data.
func ManiaScore(holders HolderStats, social SocialStats) ManiaResult {
	result := ManiaResult{
		HolderQuality:  holderQuality(holders),
		SocialVelocity: socialVelocity(social),
		BotRisk:        botRisk(social),
	}
	result.Total = round1(clamp(
		0.45*result.HolderQuality+
			0.45*result.SocialVelocity+
			0.10*(100-result.BotRisk),
		0, 100))
	return result
}

// holderQuality starts at 100 and penalizes concentration: every point of
// top-1 share above 5% costs 4, every point of top-5 share above 20% costs 2.
func holderQuality(holders HolderStats) float64 {
	if !holders.Known {
		return 50
	}
	score := 100.0
	if holders.Top1Pct > 5 {
		score -= (holders.Top1Pct - 5) * 4
	}
	if holders.Top5Pct > 20 {
		score -= (holders.Top5Pct - 20) * 2
	}
	return round1(clamp(score, 0, 100))
}

// socialVelocity rewards followers gained per day on a log scale, with a
// bonus for brand-new accounts and a penalty for stale ones.
func socialVelocity(social SocialStats) float64 {
	if !social.Known {
		return 50
	}
	ageDays := social.AccountAgeDays
	if ageDays < 1 {
		ageDays = 1
	}
	perDay := float64(social.Followers) / float64(ageDays)
	score := 100 * clamp(math.Log10(1+perDay)/3, 0, 1)
	if social.AccountAgeDays > 0 && social.AccountAgeDays <= 7 {
		score += 10
	}
	if social.AccountAgeDays > 180 && perDay < 1 {
		score -= 20
	}
	return round1(clamp(score, 0, 100))
}

// botRisk accumulates classic bought-follower signals.
func botRisk(social SocialStats) float64 {
	if !social.Known {
		return 0
	}
	risk := 0.0
	if social.Followers > 0 && float64(social.Following) > 2*float64(social.Followers) {
		risk += 30
	}
	if social.Followers >= 1000 && social.Tweets < social.Followers/1000 {
		risk += 25
	}
	if social.EngagementRate > 0 && social.EngagementRate < 0.001 {
		risk += 25
	}
	if social.Followers >= 1000 && social.Followers%1000 == 0 {
		risk += 20
	}
	return clamp(risk, 0, 100)
}
