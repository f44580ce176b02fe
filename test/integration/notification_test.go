package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/VendleServices/vendle-backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notificationList struct {
	Notifications []struct {
		ID     string `json:"id"`
		Type   string `json:"type"`
		IsRead bool   `json:"is_read"`
	} `json:"notifications"`
	UnreadCount int64 `json:"unread_count"`
}

func TestNotifications_BidNotifiesOwner(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	ownerToken, owner := helpers.CreateAndLoginHomeowner(t, ts, ts.DB)
	claim, auctionID := launchAuction(t, ts, ownerToken, owner.ID)

	bidderToken, bidder, bidderProfile := helpers.CreateAndLoginContractor(t, ts, ts.DB)
	onboardBidder(t, ts, ownerToken, claim.ID, bidderToken, bidder, bidderProfile)

	res, body := ts.SendRequest(t, "POST", "/api/v1/auctions/"+auctionID+"/bids", bidderToken, map[string]interface{}{
		"amount": 15000.0,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = ts.SendRequest(t, "GET", "/api/v1/notifications", ownerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var list notificationList
	require.NoError(t, json.Unmarshal([]byte(body), &list))

	found := false
	for _, n := range list.Notifications {
		if n.Type == "new_bid" {
			found = true
		}
	}
	assert.True(t, found, "placing a bid must notify the auction owner")
}

func TestNotifications_MarkReadFlow(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	ownerToken, owner := helpers.CreateAndLoginHomeowner(t, ts, ts.DB)
	contractorToken, contractor, _ := helpers.CreateAndLoginContractor(t, ts, ts.DB)

	// Two invitations produce two unread notifications for the contractor.
	claimA := helpers.CreateClaim(t, ts.DB, owner.ID)
	claimB := helpers.CreateClaim(t, ts.DB, owner.ID)
	inviteContractor(t, ts, ownerToken, claimA.ID, contractor.ID)
	inviteContractor(t, ts, ownerToken, claimB.ID, contractor.ID)

	res, body := ts.SendRequest(t, "GET", "/api/v1/notifications/unread-count", contractorToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var count struct {
		UnreadCount int64 `json:"unread_count"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &count))
	assert.Equal(t, int64(2), count.UnreadCount)

	res, body = ts.SendRequest(t, "GET", "/api/v1/notifications", contractorToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var list notificationList
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	require.NotEmpty(t, list.Notifications)

	res, _ = ts.SendRequest(t, "POST", "/api/v1/notifications/"+list.Notifications[0].ID+"/read", contractorToken, nil)
	require.Equal(t, http.StatusNoContent, res.StatusCode)

	res, body = ts.SendRequest(t, "GET", "/api/v1/notifications/unread-count", contractorToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	require.NoError(t, json.Unmarshal([]byte(body), &count))
	assert.Equal(t, int64(1), count.UnreadCount)

	res, _ = ts.SendRequest(t, "POST", "/api/v1/notifications/read-all", contractorToken, nil)
	require.Equal(t, http.StatusNoContent, res.StatusCode)

	res, body = ts.SendRequest(t, "GET", "/api/v1/notifications/unread-count", contractorToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	require.NoError(t, json.Unmarshal([]byte(body), &count))
	assert.Equal(t, int64(0), count.UnreadCount)
}

func TestNotifications_ChatMessageNotifiesRecipient(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	ownerToken, _ := helpers.CreateAndLoginHomeowner(t, ts, ts.DB)
	contractorToken, contractor, _ := helpers.CreateAndLoginContractor(t, ts, ts.DB)

	res, body := ts.SendRequest(t, "POST", "/api/v1/chat/messages", ownerToken, map[string]interface{}{
		"recipient_id": contractor.ID,
		"content":      "hello there",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = ts.SendRequest(t, "GET", "/api/v1/notifications", contractorToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "new_message")
}
