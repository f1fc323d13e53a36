// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package events contains the Kafka-backed background task consumers
// and producers, and the registry which pauses and resumes consumers
// as a group (e.g., around the legacy store migration window).
package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/comixd/comixd/pkg/core/log"
)

// Pausable is a background consumer which can suspend and resume
// message processing without leaving its consumer group.
type Pausable interface {
	// Name identifies the consumer in log records.
	Name() string
	// Pause suspends fetching of new messages on all partitions.
	Pause()
	// Resume reverts a previous Pause call.
	Resume()
}

// Registry tracks the registered pausable consumers. It implements
// the storemig.ConsumerRegistry interface.
type Registry struct {
	mu        sync.Mutex
	consumers []Pausable
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a consumer to the registry. Consumers are paused and
// resumed in their registration order.
func (r *Registry) Register(c Pausable) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.consumers = append(r.consumers, c)
}

// PauseAll pauses all registered consumers.
func (r *Registry) PauseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.consumers {
		log.Info(
			context.Background(),
			"pausing consumer",
			slog.String("consumer", c.Name()),
		)
		c.Pause()
	}
}

// ResumeAll resumes all registered consumers.
func (r *Registry) ResumeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.consumers {
		log.Info(
			context.Background(),
			"resuming consumer",
			slog.String("consumer", c.Name()),
		)
		c.Resume()
	}
}
