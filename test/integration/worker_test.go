package integration_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/VendleServices/vendle-backend/internal/models"
	"github.com/VendleServices/vendle-backend/internal/repositories"
	"github.com/VendleServices/vendle-backend/internal/services"
	"github.com/VendleServices/vendle-backend/internal/workers"
	"github.com/VendleServices/vendle-backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuctionWorker_SweepClosesExpired(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	ownerToken, owner := helpers.CreateAndLoginHomeowner(t, ts, ts.DB)
	_, auctionID := launchAuction(t, ts, ownerToken, owner.ID)

	err := ts.DB.Model(&models.Auction{}).Where("id = ?", auctionID).
		Update("ends_at", time.Now().Add(-time.Minute)).Error
	require.NoError(t, err)

	notifications := services.NewNotificationService(repositories.NewNotificationRepository(), nil)
	worker := workers.NewAuctionWorker(ts.DB, repositories.NewAuctionRepository(), notifications, time.Minute)
	worker.Sweep()

	var auction models.Auction
	require.NoError(t, ts.DB.First(&auction, "id = ?", auctionID).Error)
	assert.Equal(t, models.AuctionStatusClosed, auction.Status)

	// The owner hears about the close.
	res, body := ts.SendRequest(t, "GET", "/api/v1/notifications", ownerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "auction_closed")
}

func TestAuctionWorker_SweepLeavesOpenAuctionsAlone(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	ownerToken, owner := helpers.CreateAndLoginHomeowner(t, ts, ts.DB)
	_, auctionID := launchAuction(t, ts, ownerToken, owner.ID)

	notifications := services.NewNotificationService(repositories.NewNotificationRepository(), nil)
	worker := workers.NewAuctionWorker(ts.DB, repositories.NewAuctionRepository(), notifications, time.Minute)
	worker.Sweep()

	var auction models.Auction
	require.NoError(t, ts.DB.First(&auction, "id = ?", auctionID).Error)
	assert.Equal(t, models.AuctionStatusOpen, auction.Status)
}
