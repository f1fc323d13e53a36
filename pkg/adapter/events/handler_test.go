// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/comixd/comixd/pkg/adapter/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	marked []*sarama.ConsumerMessage
}

func (s *fakeSession) Claims() map[string][]int32 { return nil }
func (s *fakeSession) MemberID() string           { return "member" }
func (s *fakeSession) GenerationID() int32        { return 1 }
func (s *fakeSession) MarkOffset(string, int32, int64, string) {
}
func (s *fakeSession) Commit() {}
func (s *fakeSession) ResetOffset(string, int32, int64, string) {
}

func (s *fakeSession) MarkMessage(
	msg *sarama.ConsumerMessage, _ string,
) {
	s.marked = append(s.marked, msg)
}

func (s *fakeSession) Context() context.Context {
	return context.Background()
}

type fakeClaim struct {
	messages chan *sarama.ConsumerMessage
}

func (c *fakeClaim) Topic() string              { return "topic" }
func (c *fakeClaim) Partition() int32           { return 0 }
func (c *fakeClaim) InitialOffset() int64       { return 0 }
func (c *fakeClaim) HighWaterMarkOffset() int64 { return 0 }

func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage {
	return c.messages
}

type note struct {
	Text string `json:"text"`
}

func deliver(values ...[]byte) *fakeClaim {
	claim := &fakeClaim{
		messages: make(chan *sarama.ConsumerMessage, len(values)),
	}
	for i, v := range values {
		claim.messages <- &sarama.ConsumerMessage{
			Topic:  "topic",
			Offset: int64(i),
			Value:  v,
		}
	}
	close(claim.messages)
	return claim
}

func TestHandlerDecodesAndConsumes(t *testing.T) {
	var got []string
	h := events.NewHandler(
		func(_ *sarama.ConsumerMessage, n note) error {
			got = append(got, n.Text)
			return nil
		},
	)
	session := &fakeSession{}

	err := h.ConsumeClaim(session, deliver(
		[]byte(`{"text":"one"}`),
		[]byte(`{"text":"two"}`),
	))

	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, got)
	assert.Len(t, session.marked, 2)
}

func TestHandlerMarksMalformedMessages(t *testing.T) {
	var calls int
	h := events.NewHandler(
		func(*sarama.ConsumerMessage, note) error {
			calls++
			return nil
		},
	)
	session := &fakeSession{}

	err := h.ConsumeClaim(session, deliver(
		[]byte(`{not json`),
		[]byte(`{"text":"ok"}`),
	))

	require.NoError(t, err)
	// the poison message is skipped but still marked
	assert.Equal(t, 1, calls)
	assert.Len(t, session.marked, 2)
}

func TestHandlerRetriesAndGivesUp(t *testing.T) {
	var calls int
	h := events.NewHandler(
		func(*sarama.ConsumerMessage, note) error {
			calls++
			return errors.New("always fails")
		},
	)
	session := &fakeSession{}

	err := h.ConsumeClaim(session, deliver([]byte(`{"text":"x"}`)))

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Len(t, session.marked, 1)
}
