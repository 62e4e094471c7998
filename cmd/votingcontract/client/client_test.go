package client

import (
	"context"
	"encoding/json"
	"errors"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tokenized/voting-contract/internal/broadcaster"
	"github.com/tokenized/voting-contract/internal/contract"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"
)

func TestEnvelope(t *testing.T) {
	b, err := Envelope("alice", "Red")
	if err != nil {
		t.Fatalf("Failed to build envelope : %s", err)
	}

	var got struct {
		Method  string                `json:"method"`
		Payload contract.CastAndTally `json:"payload"`
	}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Failed to decode envelope : %s", err)
	}

	if got.Method != contract.MethodCastAndTally {
		t.Errorf("Got method %s, want %s", got.Method, contract.MethodCastAndTally)
	}

	want := contract.CastAndTally{VoterID: "alice", Color: "Red"}
	if diff := cmp.Diff(want, got.Payload); diff != "" {
		t.Errorf("Payload mismatch (-want +got):\n%s", diff)
	}
}

func TestCast(t *testing.T) {
	var received contract.CastAndTally
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/cast_and_tally" {
			http.NotFound(w, r)
			return
		}

		b, _ := ioutil.ReadAll(r.Body)
		json.Unmarshal(b, &received)

		if received.Color != "Red" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"msg":"Invalid color 'Pink'"}`))
			return
		}

		w.Write([]byte(`{"msg":"Vote cast for 'Red'. Tally: {\"Red\": 1}. Winner: Red"}`))
	}))
	defer server.Close()

	c := New(Config{URL: server.URL + "/", Timeout: 5 * time.Second})
	ctx := c.Context()

	reply, err := c.Cast(ctx, "alice", "Red")
	if err != nil {
		t.Fatalf("Failed to cast : %s", err)
	}

	want := &Reply{
		Status:   http.StatusOK,
		Response: contract.Response{Msg: `Vote cast for 'Red'. Tally: {"Red": 1}. Winner: Red`},
	}
	if diff := cmp.Diff(want, reply); diff != "" {
		t.Errorf("Reply mismatch (-want +got):\n%s", diff)
	}

	if received.VoterID != "alice" {
		t.Errorf("Got voter %s, want alice", received.VoterID)
	}

	reply, err = c.Cast(ctx, "bob", "Pink")
	if err != nil {
		t.Fatalf("Failed to cast : %s", err)
	}

	if reply.Status != http.StatusBadRequest || reply.Response.Msg != "Invalid color 'Pink'" {
		t.Errorf("Got %d %q, want rejection", reply.Status, reply.Response.Msg)
	}
}

func TestWatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(Config{URL: "http://127.0.0.1:1", Timeout: time.Second})
	if err := c.Watch(ctx, nil); err == nil {
		t.Errorf("Watch succeeded on a cancelled context")
	}
}

func TestWatchSkipsStale(t *testing.T) {
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/ws" {
			http.NotFound(w, r)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		// Snapshot, then casts delivered out of order.
		for _, votes := range []int{2, 3, 5, 4, 5, 6} {
			conn.WriteJSON(broadcaster.Update{Votes: votes})
		}
	}))
	defer server.Close()

	c := New(Config{URL: server.URL, Timeout: 5 * time.Second})
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	var got []int
	done := errors.New("done")
	err := c.Watch(ctx, func(u broadcaster.Update) error {
		got = append(got, u.Votes)
		if u.Votes == 6 {
			return done
		}
		return nil
	})
	if err != done {
		t.Fatalf("Got %v, want %v", err, done)
	}

	if diff := cmp.Diff([]int{2, 3, 5, 6}, got); diff != "" {
		t.Errorf("Votes mismatch (-want +got):\n%s", diff)
	}
}
