package handlers

import (
	"context"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pieceful-app/pieceful-server/internal/puzzle"
)

func TestConnectWSSnapshotBeforeBroadcasts(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))
	p := puzzle.NewProject("stream", 10, 10, rnd)

	store := newMemStore(0)
	_, err := store.CreateProject(context.Background(), p, nil)
	require.NoError(t, err)

	h := newTestPuzzleHandler(t, store)

	mux := http.NewServeMux()
	mux.HandleFunc("/puzzle/{id}/connect", h.ConnectWS)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	// Broadcast a mutated snapshot in a tight loop while the client
	// connects. The first frame the client reads must still be the stored
	// state: the conn may only join the hub after its snapshot went out,
	// or a broadcast could write to it mid-handshake.
	changed := *p
	changed.Progress = 99
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				h.hub.ProjectChanged(&changed)
			}
		}
	}()
	t.Cleanup(func() {
		close(stop)
		wg.Wait()
	})

	url := "ws" + strings.TrimPrefix(srv.URL, "http") +
		"/puzzle/" + p.ID.String() + "/connect"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var first ProjectDTO
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, p.ID.String(), first.ProjectId)
	assert.Equal(t, 0, first.Progress)

	// every later frame is a hub broadcast
	var next ProjectDTO
	require.NoError(t, conn.ReadJSON(&next))
	assert.Equal(t, 99, next.Progress)
}
