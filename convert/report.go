// MIT License
//
// Copyright (c) 2023 Lack
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package convert

import (
	"sync"

	"go.uber.org/atomic"

	"github.com/vine-io/bpmnconv/result"
)

// Report collects the outcome of a batch of passes, one per input in input
// order. Ids need not be unique; lookups by id return the first input with
// that id.
type Report[T any] struct {
	mu      sync.RWMutex
	ids     []string
	results []result.Result[T]

	succeeded atomic.Int32
	ignored   atomic.Int32
	failed    atomic.Int32
}

func newReport[T any](ids []string) *Report[T] {
	return &Report[T]{ids: ids, results: make([]result.Result[T], len(ids))}
}

func (r *Report[T]) put(i int, res result.Result[T]) {
	r.mu.Lock()
	r.results[i] = res
	r.mu.Unlock()

	switch res.Kind() {
	case result.Success:
		r.succeeded.Inc()
	case result.Ignored:
		r.ignored.Inc()
	default:
		r.failed.Inc()
	}
}

// Len returns the number of inputs of the batch.
func (r *Report[T]) Len() int { return len(r.ids) }

// IDs returns the process ids in input order.
func (r *Report[T]) IDs() []string {
	ids := make([]string, len(r.ids))
	copy(ids, r.ids)
	return ids
}

// At returns the id and the outcome of the i-th input.
func (r *Report[T]) At(i int) (string, result.Result[T]) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ids[i], r.results[i]
}

// Result returns the outcome of the pass over the process id. An unknown id
// reports a failure.
func (r *Report[T]) Result(id string) result.Result[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i, v := range r.ids {
		if v == id {
			return r.results[i]
		}
	}
	return result.Failf[T]("process %s not found", id)
}

func (r *Report[T]) Status(id string) result.Kind {
	return r.Result(id).Kind()
}

func (r *Report[T]) Succeeded() int { return int(r.succeeded.Load()) }

func (r *Report[T]) Ignored() int { return int(r.ignored.Load()) }

func (r *Report[T]) Failed() int { return int(r.failed.Load()) }
