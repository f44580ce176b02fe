package algorithms

import (
	"sort"

	"github.com/VendleServices/vendle-backend/internal/models"
)

// ContractorStats carries a contractor's bidding track record.
type ContractorStats struct {
	TotalBids   int64
	AuctionsWon int64
}

// ScoreContractor scores how well a contractor fits a claim (0-100) and
// explains the score.
func ScoreContractor(claim *models.Claim, profile *models.ContractorProfile, stats ContractorStats) (float64, []string) {
	score := 0.0
	reasons := []string{}

	// City match (30 points)
	if profile.City != "" && profile.City == claim.City {
		score += 30
		reasons = append(reasons, "Based in the claim's city")
	}

	// NDA already signed (25 points): can see the claim immediately
	if profile.NDASigned {
		score += 25
		reasons = append(reasons, "NDA already signed")
	}

	// Licensed (15 points)
	if profile.LicenseNo != "" {
		score += 15
		reasons = append(reasons, "Licensed contractor")
	}

	// Platform activity (up to 15 points)
	switch {
	case stats.TotalBids >= 20:
		score += 15
		reasons = append(reasons, "Highly active bidder")
	case stats.TotalBids >= 5:
		score += 10
		reasons = append(reasons, "Active bidder")
	case stats.TotalBids > 0:
		score += 5
	}

	// Win rate (up to 15 points)
	if stats.TotalBids > 0 && stats.AuctionsWon > 0 {
		winRate := float64(stats.AuctionsWon) / float64(stats.TotalBids)
		switch {
		case winRate >= 0.3:
			score += 15
			reasons = append(reasons, "Strong win rate")
		case winRate >= 0.1:
			score += 10
			reasons = append(reasons, "Proven auction wins")
		default:
			score += 5
		}
	}

	return score, reasons
}

// ScoredContractor pairs a contractor with their claim-fit score.
type ScoredContractor struct {
	Profile models.ContractorProfile
	Score   float64
	Reasons []string
}

// RankContractors scores every candidate against the claim and returns them
// best-first. statsFor may return zero stats for unknown contractors.
func RankContractors(
	claim *models.Claim,
	candidates []models.ContractorProfile,
	statsFor func(userID string) ContractorStats,
) []ScoredContractor {
	ranked := make([]ScoredContractor, 0, len(candidates))
	for _, profile := range candidates {
		score, reasons := ScoreContractor(claim, &profile, statsFor(profile.UserID))
		ranked = append(ranked, ScoredContractor{
			Profile: profile,
			Score:   score,
			Reasons: reasons,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
