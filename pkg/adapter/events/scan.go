// Copyright (c) 2026 The comixd authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/comixd/comixd/pkg/core/log"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// TopicScanTasks carries library scan requests.
const TopicScanTasks = "comixd_scan_tasks"

// ScanTask asks the scanner to walk one library root and reconcile
// the catalog with the files on disk.
type ScanTask struct {
	LibraryID   uuid.UUID `json:"library_id"`
	Root        string    `json:"root"`
	RequestedAt time.Time `json:"requested_at"`
}

// Scanner reconciles a library root with the catalog.
type Scanner interface {
	ScanLibrary(ctx context.Context, libraryID uuid.UUID, root string) error
}

// ScanTaskConsumer consumes ScanTask messages from the scan tasks
// topic within the given consumer group. It implements Pausable, so
// the registry can suspend it during the migration window; pausing
// stops message fetching but keeps the group membership, avoiding a
// rebalance.
type ScanTaskConsumer struct {
	group   string
	client  sarama.Client
	cg      sarama.ConsumerGroup
	scanner Scanner
}

// NewScanTaskConsumer creates a consumer in the given group. Start
// must be called before the consumer processes any message.
func NewScanTaskConsumer(
	group string, client sarama.Client, scanner Scanner,
) *ScanTaskConsumer {
	return &ScanTaskConsumer{
		group:   group,
		client:  client,
		scanner: scanner,
	}
}

// Name implements Pausable.
func (c *ScanTaskConsumer) Name() string {
	return "scan-tasks/" + c.group
}

// Start joins the consumer group and launches the consume loop in a
// background goroutine. The loop ends when ctx is canceled.
func (c *ScanTaskConsumer) Start(ctx context.Context) error {
	cg, err := sarama.NewConsumerGroupFromClient(c.group, c.client)
	if err != nil {
		return fmt.Errorf("joining group %s: %w", c.group, err)
	}
	c.cg = cg
	go func() {
		for {
			err := cg.Consume(
				ctx,
				[]string{TopicScanTasks},
				NewHandler(c.consume),
			)
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				log.Warn(
					ctx, "scan task consume loop restarting",
					log.Err("error", err),
				)
			}
		}
	}()
	return nil
}

// Pause implements Pausable.
func (c *ScanTaskConsumer) Pause() {
	if c.cg != nil {
		c.cg.PauseAll()
	}
}

// Resume implements Pausable.
func (c *ScanTaskConsumer) Resume() {
	if c.cg != nil {
		c.cg.ResumeAll()
	}
}

// Close leaves the consumer group.
func (c *ScanTaskConsumer) Close() error {
	if c.cg == nil {
		return nil
	}
	return c.cg.Close()
}

func (c *ScanTaskConsumer) consume(
	msg *sarama.ConsumerMessage, task ScanTask,
) error {
	ctx, cancel := context.WithTimeout(
		context.Background(), 10*time.Minute,
	)
	defer cancel()
	log.Info(
		ctx, "scanning library",
		slog.String("library", task.LibraryID.String()),
		slog.String("root", task.Root),
	)
	return c.scanner.ScanLibrary(ctx, task.LibraryID, task.Root)
}

// ScanTaskProducer emits ScanTask messages, keyed by library ID so
// scans of the same library stay ordered.
type ScanTaskProducer struct {
	producer sarama.SyncProducer
}

// NewScanTaskProducer creates a producer from the given client.
func NewScanTaskProducer(client sarama.Client) (*ScanTaskProducer, error) {
	p, err := sarama.NewSyncProducerFromClient(client)
	if err != nil {
		return nil, fmt.Errorf("creating sync producer: %w", err)
	}
	return &ScanTaskProducer{producer: p}, nil
}

// RequestScan publishes a scan task for the given library.
func (p *ScanTaskProducer) RequestScan(
	ctx context.Context, libraryID uuid.UUID, root string,
) error {
	task := ScanTask{
		LibraryID:   libraryID,
		Root:        root,
		RequestedAt: time.Now().UTC(),
	}
	value, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("encoding scan task: %w", err)
	}
	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: TopicScanTasks,
		Key:   sarama.StringEncoder(libraryID.String()),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return fmt.Errorf("publishing scan task: %w", err)
	}
	return nil
}

// Close releases the underlying producer.
func (p *ScanTaskProducer) Close() error {
	return p.producer.Close()
}
