// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package events

import (
	"context"
	"log/slog"

	"github.com/IBM/sarama"
	"github.com/comixd/comixd/pkg/core/log"
	"github.com/goccy/go-json"
)

const consumeRetries = 3

// Handler adapts a typed consume function to the
// sarama.ConsumerGroupHandler interface. Each message value is
// decoded as a JSON document of type T before it is handed to the
// consume function. Malformed messages are logged and marked, so a
// poison message cannot wedge the partition.
type Handler[T any] struct {
	consume func(msg *sarama.ConsumerMessage, task T) error
}

// NewHandler creates a Handler calling consume for each decoded
// message.
func NewHandler[T any](
	consume func(msg *sarama.ConsumerMessage, task T) error,
) *Handler[T] {
	return &Handler[T]{consume: consume}
}

// Setup implements sarama.ConsumerGroupHandler.
func (h *Handler[T]) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

// Cleanup implements sarama.ConsumerGroupHandler.
func (h *Handler[T]) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim decodes and consumes messages of one partition claim,
// marking each message after it has been handled (or given up on).
func (h *Handler[T]) ConsumeClaim(
	session sarama.ConsumerGroupSession,
	claim sarama.ConsumerGroupClaim,
) error {
	for msg := range claim.Messages() {
		h.handle(session.Context(), msg)
		session.MarkMessage(msg, "")
	}
	return nil
}

func (h *Handler[T]) handle(
	ctx context.Context, msg *sarama.ConsumerMessage,
) {
	var task T
	if err := json.Unmarshal(msg.Value, &task); err != nil {
		log.Error(
			ctx, "dropping malformed task message",
			slog.String("topic", msg.Topic),
			slog.Int64("offset", msg.Offset),
			log.Err("error", err),
		)
		return
	}
	var err error
	for i := 0; i < consumeRetries; i++ {
		if err = h.consume(msg, task); err == nil {
			return
		}
	}
	log.Error(
		ctx, "giving up on task message",
		slog.String("topic", msg.Topic),
		slog.Int64("offset", msg.Offset),
		log.Err("error", err),
	)
}
