package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/VendleServices/vendle-backend/internal/models"
	"github.com/VendleServices/vendle-backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// launchAuction creates a claim for the owner and opens its auction.
func launchAuction(t *testing.T, ts *helpers.TestServer, ownerToken string, ownerID string) (*models.Claim, string) {
	t.Helper()
	claim := helpers.CreateClaim(t, ts.DB, ownerID)

	res, body := ts.SendRequest(t, "POST", "/api/v1/claims/"+claim.ID+"/launch", ownerToken, nil)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var auction struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &auction))
	require.NotEmpty(t, auction.ID)
	return claim, auction.ID
}

// onboardBidder invites the contractor, signs their NDA and accepts the
// invitation, leaving them eligible to bid.
func onboardBidder(t *testing.T, ts *helpers.TestServer, ownerToken, claimID, contractorToken string, contractor *models.User, profile *models.ContractorProfile) {
	t.Helper()
	invID := inviteContractor(t, ts, ownerToken, claimID, contractor.ID)
	helpers.SignNDA(t, ts.DB, profile)

	res, body := ts.SendRequest(t, "POST", "/api/v1/invitations/"+invID+"/accept", contractorToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
}

func TestLaunchAuction_OnlyOnce(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)
	ownerToken, owner := helpers.CreateAndLoginHomeowner(t, ts, ts.DB)

	claim, _ := launchAuction(t, ts, ownerToken, owner.ID)

	res, body := ts.SendRequest(t, "POST", "/api/v1/claims/"+claim.ID+"/launch", ownerToken, nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode, body)

	var updated models.Claim
	require.NoError(t, ts.DB.First(&updated, "id = ?", claim.ID).Error)
	assert.Equal(t, models.ClaimStatusLaunched, updated.Status)
}

func TestPlaceBid_FullFlow(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	ownerToken, owner := helpers.CreateAndLoginHomeowner(t, ts, ts.DB)
	claim, auctionID := launchAuction(t, ts, ownerToken, owner.ID)

	bidderToken, bidder, bidderProfile := helpers.CreateAndLoginContractor(t, ts, ts.DB)
	onboardBidder(t, ts, ownerToken, claim.ID, bidderToken, bidder, bidderProfile)

	res, body := ts.SendRequest(t, "POST", "/api/v1/auctions/"+auctionID+"/bids", bidderToken, map[string]interface{}{
		"amount":    16400.0,
		"materials": 5800.0,
		"labor":     7100.0,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	assert.Contains(t, body, `"amount":16400`)

	// A second, lower bid from another contractor becomes the best bid.
	secondToken, second, secondProfile := helpers.CreateAndLoginContractor(t, ts, ts.DB)
	onboardBidder(t, ts, ownerToken, claim.ID, secondToken, second, secondProfile)

	res, body = ts.SendRequest(t, "POST", "/api/v1/auctions/"+auctionID+"/bids", secondToken, map[string]interface{}{
		"amount": 15900.0,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = ts.SendRequest(t, "GET", "/api/v1/auctions/"+auctionID, ownerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var summary struct {
		Auction struct {
			BidCount   int      `json:"bid_count"`
			CurrentBid *float64 `json:"current_bid"`
		} `json:"auction"`
		Bids      []struct{ Amount float64 } `json:"bids"`
		LowestBid *struct {
			Amount       float64 `json:"amount"`
			ContractorID string  `json:"contractor_id"`
		} `json:"lowest_bid"`
		RemainingSeconds int64 `json:"remaining_seconds"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &summary))
	assert.Equal(t, 2, summary.Auction.BidCount)
	require.NotNil(t, summary.LowestBid)
	assert.Equal(t, 15900.0, summary.LowestBid.Amount)
	assert.Equal(t, second.ID, summary.LowestBid.ContractorID)
	require.NotNil(t, summary.Auction.CurrentBid)
	assert.Equal(t, 15900.0, *summary.Auction.CurrentBid)
	assert.Greater(t, summary.RemainingSeconds, int64(0))
}

func TestPlaceBid_RequiresNDA(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	ownerToken, owner := helpers.CreateAndLoginHomeowner(t, ts, ts.DB)
	claim, auctionID := launchAuction(t, ts, ownerToken, owner.ID)

	bidderToken, bidder, _ := helpers.CreateAndLoginContractor(t, ts, ts.DB)
	inviteContractor(t, ts, ownerToken, claim.ID, bidder.ID)

	res, body := ts.SendRequest(t, "POST", "/api/v1/auctions/"+auctionID+"/bids", bidderToken, map[string]interface{}{
		"amount": 14000.0,
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)
	assert.Contains(t, body, "NDA_REQUIRED")
}

func TestPlaceBid_RequiresAcceptedInvitation(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	ownerToken, owner := helpers.CreateAndLoginHomeowner(t, ts, ts.DB)
	claim, auctionID := launchAuction(t, ts, ownerToken, owner.ID)

	bidderToken, bidder, bidderProfile := helpers.CreateAndLoginContractor(t, ts, ts.DB)
	inviteContractor(t, ts, ownerToken, claim.ID, bidder.ID)
	helpers.SignNDA(t, ts.DB, bidderProfile)

	// Invitation still pending.
	res, body := ts.SendRequest(t, "POST", "/api/v1/auctions/"+auctionID+"/bids", bidderToken, map[string]interface{}{
		"amount": 14000.0,
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)
}

func TestPlaceBid_ClosedAuction(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	ownerToken, owner := helpers.CreateAndLoginHomeowner(t, ts, ts.DB)
	claim, auctionID := launchAuction(t, ts, ownerToken, owner.ID)

	bidderToken, bidder, bidderProfile := helpers.CreateAndLoginContractor(t, ts, ts.DB)
	onboardBidder(t, ts, ownerToken, claim.ID, bidderToken, bidder, bidderProfile)

	res, body := ts.SendRequest(t, "POST", "/api/v1/auctions/"+auctionID+"/close", ownerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, "POST", "/api/v1/auctions/"+auctionID+"/bids", bidderToken, map[string]interface{}{
		"amount": 14000.0,
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode, body)
}

func TestPlaceBid_ExpiredWindowRejected(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	ownerToken, owner := helpers.CreateAndLoginHomeowner(t, ts, ts.DB)
	claim, auctionID := launchAuction(t, ts, ownerToken, owner.ID)

	bidderToken, bidder, bidderProfile := helpers.CreateAndLoginContractor(t, ts, ts.DB)
	onboardBidder(t, ts, ownerToken, claim.ID, bidderToken, bidder, bidderProfile)

	// Push the window into the past; the status row still says open.
	err := ts.DB.Model(&models.Auction{}).Where("id = ?", auctionID).
		Update("ends_at", time.Now().Add(-time.Hour)).Error
	require.NoError(t, err)

	res, body := ts.SendRequest(t, "POST", "/api/v1/auctions/"+auctionID+"/bids", bidderToken, map[string]interface{}{
		"amount": 14000.0,
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode, body)
}

func TestAuctionSummary_OwnerOnly(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	ownerToken, owner := helpers.CreateAndLoginHomeowner(t, ts, ts.DB)
	_, auctionID := launchAuction(t, ts, ownerToken, owner.ID)

	otherToken, _ := helpers.CreateAndLoginHomeowner(t, ts, ts.DB)
	res, _ := ts.SendRequest(t, "GET", "/api/v1/auctions/"+auctionID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestMyBids_ListsOwnOnly(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	ownerToken, owner := helpers.CreateAndLoginHomeowner(t, ts, ts.DB)
	claim, auctionID := launchAuction(t, ts, ownerToken, owner.ID)

	bidderToken, bidder, bidderProfile := helpers.CreateAndLoginContractor(t, ts, ts.DB)
	onboardBidder(t, ts, ownerToken, claim.ID, bidderToken, bidder, bidderProfile)

	res, body := ts.SendRequest(t, "POST", "/api/v1/auctions/"+auctionID+"/bids", bidderToken, map[string]interface{}{
		"amount": 17200.0,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = ts.SendRequest(t, "GET", "/api/v1/bids", bidderToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, auctionID)

	otherToken, _, _ := helpers.CreateAndLoginContractor(t, ts, ts.DB)
	res, body = ts.SendRequest(t, "GET", "/api/v1/bids", otherToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.NotContains(t, body, auctionID)
}
