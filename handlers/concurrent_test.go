// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/topic-vote/models"
	"github.com/danielhkuo/topic-vote/testutil"
)

// TestConcurrentReadsDuringVoting verifies that listing stays consistent while
// votes are being cast: every response succeeds and no topic ever reports
// more votes than there are voters.
func TestConcurrentReadsDuringVoting(t *testing.T) {
	handler, svc := newTestHandler(t)
	ctx := context.Background()

	topic, err := svc.Propose(ctx, "1", "alice", "Busy topic", "everyone votes")
	if err != nil {
		t.Fatal(err)
	}

	numVoters := 15
	numReaders := 5

	var wg sync.WaitGroup
	var readFailures atomic.Int32
	var voteFailures atomic.Int32

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(voterIdx int) {
			defer wg.Done()
			if _, err := svc.ToggleVote(ctx, fmt.Sprintf("voter-%d", voterIdx), topic.ID); err != nil {
				voteFailures.Add(1)
			}
		}(i)
	}

	for i := 0; i < numReaders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 5; n++ {
				w := httptest.NewRecorder()
				handler.ListTopics(w, testutil.MakeRequest("GET", "/topics", nil, nil))
				if w.Code != http.StatusOK {
					readFailures.Add(1)
					continue
				}
				var resp models.TopicListResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					readFailures.Add(1)
					continue
				}
				if len(resp.Topics) != 1 || resp.Topics[0].Votes > numVoters {
					readFailures.Add(1)
				}
			}
		}()
	}

	wg.Wait()

	if voteFailures.Load() != 0 {
		t.Errorf("Expected all votes to succeed, %d failed", voteFailures.Load())
	}
	if readFailures.Load() != 0 {
		t.Errorf("Expected all reads to succeed, %d failed", readFailures.Load())
	}

	req := testutil.MakeRequest("GET", "/topics/1", nil, nil)
	req.SetPathValue("id", fmt.Sprint(topic.ID))
	w := httptest.NewRecorder()
	handler.GetTopic(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.TopicResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Topic.Votes != numVoters {
		t.Errorf("Expected %d votes, got %d", numVoters, resp.Topic.Votes)
	}
}
