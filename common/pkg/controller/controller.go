/*
 * Copyright (c) 2025, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package controller

import (
	"context"
	"time"

	"k8s.io/client-go/util/workqueue"
)

// Result tells the controller what to do with an item after Do returns.
type Result struct {
	Requeue      bool
	RequeueAfter time.Duration
}

// Handler processes one queued item. A returned error requeues the item
// with rate-limited backoff.
type Handler interface {
	Do(ctx context.Context, item interface{}) (Result, error)
}

// Controller wraps a named rate-limited workqueue with a fixed pool of
// workers. Items must be hashable; duplicates waiting in the queue are
// collapsed by the workqueue itself.
type Controller struct {
	queue   workqueue.RateLimitingInterface
	handler Handler
	workers int
}

func NewController(name string, handler Handler, workers int) *Controller {
	if workers < 1 {
		workers = 1
	}
	return &Controller{
		queue:   workqueue.NewNamedRateLimitingQueue(workqueue.DefaultControllerRateLimiter(), name),
		handler: handler,
		workers: workers,
	}
}

// Run launches the worker pool. Cancelling ctx shuts the queue down and the
// workers exit once their current item is done.
func (c *Controller) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()
		c.queue.ShutDown()
	}()
	for i := 0; i < c.workers; i++ {
		go func() {
			for c.processNext(ctx) {
			}
		}()
	}
}

func (c *Controller) processNext(ctx context.Context) bool {
	item, shutdown := c.queue.Get()
	if shutdown {
		return false
	}
	defer c.queue.Done(item)

	result, err := c.handler.Do(ctx, item)
	switch {
	case err != nil:
		c.queue.AddRateLimited(item)
	case result.RequeueAfter > 0:
		c.queue.Forget(item)
		c.queue.AddAfter(item, result.RequeueAfter)
	case result.Requeue:
		c.queue.AddRateLimited(item)
	default:
		c.queue.Forget(item)
	}
	return true
}

func (c *Controller) Add(item interface{}) {
	c.queue.Add(item)
}

func (c *Controller) AddAfter(item interface{}, delay time.Duration) {
	c.queue.AddAfter(item, delay)
}

// Len returns the number of items waiting in the queue, not counting items
// currently being processed.
func (c *Controller) Len() int {
	return c.queue.Len()
}
