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
	"fmt"
	"runtime"
	"strconv"
	"sync"

	"github.com/panjf2000/ants/v2"
	log "github.com/vine-io/vine/lib/logger"

	"github.com/vine-io/bpmnconv/bpmn"
	"github.com/vine-io/bpmnconv/graph"
	"github.com/vine-io/bpmnconv/result"
)

type Options struct {
	Factory         graph.Factory
	Workers         int
	Exporter        string
	ExporterVersion string
	TargetNamespace string
}

// Option represents a configuration option for Engine.
type Option func(o *Options)

func NewOptions(opts ...Option) *Options {
	var options Options
	for _, o := range opts {
		o(&options)
	}

	if options.Factory == nil {
		options.Factory = graph.DefaultFactory{}
	}
	if options.Workers <= 0 {
		options.Workers = runtime.NumCPU()
	}
	if options.Exporter == "" {
		options.Exporter = bpmn.DefaultExporter
		options.ExporterVersion = bpmn.DefaultExporterVersion
	}
	if options.TargetNamespace == "" {
		options.TargetNamespace = bpmn.DefaultTargetNamespace
	}

	return &options
}

// WithFactory sets the factory allocating graph nodes and edges.
func WithFactory(f graph.Factory) Option {
	return func(o *Options) {
		o.Factory = f
	}
}

// WithWorkers sets the size of the pool running batch passes.
func WithWorkers(n int) Option {
	return func(o *Options) {
		o.Workers = n
	}
}

// WithExporter sets the exporter written into generated documents.
func WithExporter(name, version string) Option {
	return func(o *Options) {
		o.Exporter = name
		o.ExporterVersion = version
	}
}

func WithTargetNamespace(ns string) Option {
	return func(o *Options) {
		o.TargetNamespace = ns
	}
}

// Engine converts whole documents and process graphs. It holds no state
// between calls and is safe for concurrent use.
type Engine struct {
	opts *Options
}

func NewEngine(opts ...Option) *Engine {
	return &Engine{opts: NewOptions(opts...)}
}

func (e *Engine) Options() Options { return *e.opts }

// ToGraph converts the first process of defs.
func (e *Engine) ToGraph(defs *bpmn.Definitions) result.Result[graph.Node] {
	if defs == nil {
		return result.Fail[graph.Node]("Null")
	}
	if len(defs.Processes) == 0 {
		return result.Failf[graph.Node]("definitions %s: no process", defs.Id)
	}
	return e.processToGraph(NewDefinitionResolver(defs), defs.Processes[0])
}

// ProcessToGraph converts the process id of defs.
func (e *Engine) ProcessToGraph(defs *bpmn.Definitions, id string) result.Result[graph.Node] {
	if defs == nil {
		return result.Fail[graph.Node]("Null")
	}
	p, ok := defs.Process(id)
	if !ok {
		return result.Failf[graph.Node]("definitions %s: process %s not found", defs.Id, id)
	}
	return e.processToGraph(NewDefinitionResolver(defs), p)
}

func (e *Engine) processToGraph(resolver *DefinitionResolver, p *bpmn.Process) result.Result[graph.Node] {
	ctx := NewContext(e.opts.Factory, resolver)
	r := ctx.ToNode(p)
	if r.IsFailure() {
		log.Errorf("convert process %s: %s", p.Id, r.Reason())
	}
	return r
}

// ToDocument converts the diagram root into a document holding one process.
func (e *Engine) ToDocument(root graph.Node) result.Result[*bpmn.Definitions] {
	ctx, r := e.rootToProcess(root)
	if !r.IsSuccess() {
		return result.Cast[*bpmn.Definitions](r)
	}
	defs := e.newDefinitions()
	mergeDeclarations(defs, ctx.Definitions())
	defs.Processes = append(defs.Processes, r.Value())
	return result.Of(defs)
}

func (e *Engine) rootToProcess(root graph.Node) (*Context, result.Result[*bpmn.Process]) {
	ctx := NewContext(e.opts.Factory, nil)
	if root == nil {
		return ctx, result.Fail[*bpmn.Process]("Null")
	}
	r := ctx.ToElement(root)
	if !r.IsSuccess() {
		if r.IsFailure() {
			log.Errorf("convert diagram %s: %s", root.ID(), r.Reason())
		}
		return ctx, result.Cast[*bpmn.Process](r)
	}
	p, ok := r.Value().(*bpmn.Process)
	if !ok {
		return ctx, result.Failf[*bpmn.Process]("node %s: %s is not a diagram", root.ID(), root.Kind())
	}
	return ctx, result.Of(p)
}

func (e *Engine) newDefinitions() *bpmn.Definitions {
	defs := bpmn.NewDefinitions()
	defs.Exporter = e.opts.Exporter
	defs.ExporterVersion = e.opts.ExporterVersion
	defs.TargetNamespace = e.opts.TargetNamespace
	return defs
}

// mergeDeclarations adds the item definitions, messages and signals one
// pass declared to defs.
func mergeDeclarations(defs, declared *bpmn.Definitions) {
	for _, item := range declared.ItemDefinitions {
		defs.AddItemDefinition(item)
	}
	for _, m := range declared.Messages {
		defs.AddMessage(m)
	}
	for _, s := range declared.Signals {
		defs.AddSignal(s)
	}
}

// duplicates returns, per input, whether an earlier input used the same id.
func duplicates(ids []string) []bool {
	seen := make(map[string]bool, len(ids))
	dup := make([]bool, len(ids))
	for i, id := range ids {
		dup[i] = seen[id]
		seen[id] = true
	}
	return dup
}

// ToGraphAll converts every process of defs, each in its own pass on the
// worker pool. defs is only read while the batch runs. A process whose id
// repeats an earlier one fails.
func (e *Engine) ToGraphAll(defs *bpmn.Definitions) (*Report[graph.Node], error) {
	if defs == nil {
		return nil, fmt.Errorf("convert definitions: Null")
	}

	ids := make([]string, 0, len(defs.Processes))
	for _, p := range defs.Processes {
		ids = append(ids, p.Id)
	}
	report := newReport[graph.Node](ids)
	dup := duplicates(ids)

	pool, err := ants.NewPool(e.opts.Workers)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	resolver := NewDefinitionResolver(defs)
	var wg sync.WaitGroup
	for i, p := range defs.Processes {
		i, p := i, p
		if dup[i] {
			report.put(i, result.Failf[graph.Node]("process %s: duplicate id", p.Id))
			continue
		}
		wg.Add(1)
		err = pool.Submit(func() {
			defer wg.Done()
			report.put(i, e.processToGraph(resolver, p))
		})
		if err != nil {
			wg.Done()
			report.put(i, result.Failf[graph.Node]("submit process %s: %v", p.Id, err))
		}
	}
	wg.Wait()

	log.Infof("converted %d processes: %d succeeded, %d failed", len(ids), report.Succeeded(), report.Failed())
	return report, nil
}

// ToDocumentAll converts every diagram root into a process of one document.
// Processes keep the order of roots; failed roots are left out of the
// document and reported. A root whose id repeats an earlier one fails.
func (e *Engine) ToDocumentAll(roots []graph.Node) (*bpmn.Definitions, *Report[*bpmn.Process], error) {
	ids := make([]string, len(roots))
	for i, root := range roots {
		if root == nil {
			ids[i] = "#" + strconv.Itoa(i)
			continue
		}
		ids[i] = root.ID()
	}
	report := newReport[*bpmn.Process](ids)
	dup := duplicates(ids)

	pool, err := ants.NewPool(e.opts.Workers)
	if err != nil {
		return nil, nil, err
	}
	defer pool.Release()

	contexts := make([]*Context, len(roots))
	var wg sync.WaitGroup
	for i, root := range roots {
		i, root := i, root
		if dup[i] {
			report.put(i, result.Failf[*bpmn.Process]("diagram %s: duplicate id", ids[i]))
			continue
		}
		wg.Add(1)
		err = pool.Submit(func() {
			defer wg.Done()
			ctx, r := e.rootToProcess(root)
			contexts[i] = ctx
			report.put(i, r)
		})
		if err != nil {
			wg.Done()
			report.put(i, result.Failf[*bpmn.Process]("submit diagram %s: %v", ids[i], err))
		}
	}
	wg.Wait()

	defs := e.newDefinitions()
	for i := 0; i < report.Len(); i++ {
		_, r := report.At(i)
		if !r.IsSuccess() {
			continue
		}
		mergeDeclarations(defs, contexts[i].Definitions())
		defs.Processes = append(defs.Processes, r.Value())
	}

	log.Infof("wrote %d diagrams: %d succeeded, %d failed", len(ids), report.Succeeded(), report.Failed())
	return defs, report, nil
}
