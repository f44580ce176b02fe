package integration_test

import (
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/VendleServices/vendle-backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roomList struct {
	Rooms []struct {
		ID          string `json:"id"`
		PartnerID   string `json:"partner_id"`
		UnreadCount int    `json:"unread_count"`
	} `json:"rooms"`
	TotalUnread int `json:"total_unread"`
}

func TestChat_SendMessageCreatesRoom(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	ownerToken, owner := helpers.CreateAndLoginHomeowner(t, ts, ts.DB)
	contractorToken, contractor, _ := helpers.CreateAndLoginContractor(t, ts, ts.DB)

	res, body := ts.SendRequest(t, "POST", "/api/v1/chat/messages", ownerToken, map[string]interface{}{
		"recipient_id": contractor.ID,
		"content":      "When can you start on the roof?",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var msg struct {
		ID     string `json:"id"`
		RoomID string `json:"room_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &msg))
	require.NotEmpty(t, msg.RoomID)

	// The recipient sees one unread room with the sender as partner.
	res, body = ts.SendRequest(t, "GET", "/api/v1/chat/rooms", contractorToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var rooms roomList
	require.NoError(t, json.Unmarshal([]byte(body), &rooms))
	require.Len(t, rooms.Rooms, 1)
	assert.Equal(t, msg.RoomID, rooms.Rooms[0].ID)
	assert.Equal(t, owner.ID, rooms.Rooms[0].PartnerID)
	assert.Equal(t, 1, rooms.Rooms[0].UnreadCount)
	assert.Equal(t, 1, rooms.TotalUnread)

	// A reply lands in the same room, not a new one.
	res, body = ts.SendRequest(t, "POST", "/api/v1/chat/messages", contractorToken, map[string]interface{}{
		"recipient_id": owner.ID,
		"content":      "We can mobilize next Monday.",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var reply struct {
		RoomID string `json:"room_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &reply))
	assert.Equal(t, msg.RoomID, reply.RoomID)
}

func TestChat_OpenRoomResetsUnread(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	ownerToken, _ := helpers.CreateAndLoginHomeowner(t, ts, ts.DB)
	contractorToken, contractor, _ := helpers.CreateAndLoginContractor(t, ts, ts.DB)

	for _, content := range []string{"first", "second", "third"} {
		res, body := ts.SendRequest(t, "POST", "/api/v1/chat/messages", ownerToken, map[string]interface{}{
			"recipient_id": contractor.ID,
			"content":      content,
		})
		require.Equal(t, http.StatusCreated, res.StatusCode, body)
	}

	res, body := ts.SendRequest(t, "GET", "/api/v1/chat/rooms", contractorToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var rooms roomList
	require.NoError(t, json.Unmarshal([]byte(body), &rooms))
	require.Len(t, rooms.Rooms, 1)
	assert.Equal(t, 3, rooms.Rooms[0].UnreadCount)
	roomID := rooms.Rooms[0].ID

	// Opening the room returns the history and clears the counter.
	res, body = ts.SendRequest(t, "GET", "/api/v1/chat/rooms/"+roomID+"/messages", contractorToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "first")
	assert.Contains(t, body, "third")

	res, body = ts.SendRequest(t, "GET", "/api/v1/chat/rooms", contractorToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	require.NoError(t, json.Unmarshal([]byte(body), &rooms))
	assert.Equal(t, 0, rooms.Rooms[0].UnreadCount)
	assert.Equal(t, 0, rooms.TotalUnread)
}

func TestChat_ConcurrentFirstMessagesShareOneRoom(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	ownerToken, owner := helpers.CreateAndLoginHomeowner(t, ts, ts.DB)
	contractorToken, contractor, _ := helpers.CreateAndLoginContractor(t, ts, ts.DB)

	// Both sides open the conversation at the same moment. The unique pair
	// key on the room means exactly one of the inserts wins and both
	// messages land in that room.
	var wg sync.WaitGroup
	send := func(token, recipientID, content string) {
		defer wg.Done()
		res, body := ts.SendRequest(t, "POST", "/api/v1/chat/messages", token, map[string]interface{}{
			"recipient_id": recipientID,
			"content":      content,
		})
		assert.Equal(t, http.StatusCreated, res.StatusCode, body)
	}
	wg.Add(2)
	go send(ownerToken, contractor.ID, "Are you available this week?")
	go send(contractorToken, owner.ID, "Following up on your claim.")
	wg.Wait()

	for _, token := range []string{ownerToken, contractorToken} {
		res, body := ts.SendRequest(t, "GET", "/api/v1/chat/rooms", token, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)

		var rooms roomList
		require.NoError(t, json.Unmarshal([]byte(body), &rooms))
		require.Len(t, rooms.Rooms, 1)
	}
}

func TestChat_SelfMessageRejected(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	ownerToken, owner := helpers.CreateAndLoginHomeowner(t, ts, ts.DB)

	res, _ := ts.SendRequest(t, "POST", "/api/v1/chat/messages", ownerToken, map[string]interface{}{
		"recipient_id": owner.ID,
		"content":      "note to self",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestChat_NonParticipantCannotOpenRoom(t *testing.T) {
	t.Parallel()
	ts := GetTestServer(t)

	ownerToken, _ := helpers.CreateAndLoginHomeowner(t, ts, ts.DB)
	_, contractor, _ := helpers.CreateAndLoginContractor(t, ts, ts.DB)
	intruderToken, _ := helpers.CreateAndLoginHomeowner(t, ts, ts.DB)

	res, body := ts.SendRequest(t, "POST", "/api/v1/chat/messages", ownerToken, map[string]interface{}{
		"recipient_id": contractor.ID,
		"content":      "private discussion",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var msg struct {
		RoomID string `json:"room_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &msg))

	res, _ = ts.SendRequest(t, "GET", "/api/v1/chat/rooms/"+msg.RoomID+"/messages", intruderToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}
