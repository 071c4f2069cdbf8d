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

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	verrs "github.com/vine-io/vine/lib/errors"
	log "github.com/vine-io/vine/lib/logger"

	"github.com/vine-io/bpmnconv/bpmn"
	"github.com/vine-io/bpmnconv/convert"
	"github.com/vine-io/bpmnconv/graph"
	"github.com/vine-io/bpmnconv/result"
)

const serviceName = "bpmnconv"

type app struct {
	configPath string
	logLevel   string
	engine     *convert.Engine
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "bpmnconv",
		Short:         "Convert BPMN documents to editor graphs and back",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default ~/.bpmnconv.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level, overrides the config file")

	root.AddCommand(a.graphCmd(), a.bpmnCmd(), a.checkCmd())
	return root
}

func (a *app) init() error {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return verrs.BadRequest(serviceName, "%v", err)
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if cfg.LogLevel != "" {
		lvl, err := log.GetLevel(cfg.LogLevel)
		if err != nil {
			return verrs.BadRequest(serviceName, "invalid log level %q", cfg.LogLevel)
		}
		if err = log.DefaultLogger.Init(log.WithLevel(lvl)); err != nil {
			return verrs.InternalServerError(serviceName, "init logger: %v", err)
		}
	}
	a.engine = convert.NewEngine(cfg.Options()...)
	return nil
}

func (a *app) graphCmd() *cobra.Command {
	var output, process string
	cmd := &cobra.Command{
		Use:   "graph <in.bpmn>",
		Short: "Convert a BPMN document into a graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := readDocument(args[0])
			if err != nil {
				return err
			}
			var r result.Result[graph.Node]
			if process != "" {
				r = a.engine.ProcessToGraph(defs, process)
			} else {
				r = a.engine.ToGraph(defs)
			}
			if !r.IsSuccess() {
				return verrs.BadRequest(serviceName, "%s: %s", args[0], r.Reason())
			}
			data, err := graph.MarshalNode(r.Value())
			if err != nil {
				return verrs.InternalServerError(serviceName, "encode graph: %v", err)
			}
			return writeOutput(cmd.OutOrStdout(), output, data)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&process, "process", "", "process id (default the first process)")
	return cmd
}

func (a *app) bpmnCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "bpmn <in.json>",
		Short: "Convert a graph into a BPMN document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return verrs.BadRequest(serviceName, "read %s: %v", args[0], err)
			}
			root, err := graph.UnmarshalNode(data)
			if err != nil {
				return verrs.BadRequest(serviceName, "decode %s: %v", args[0], err)
			}
			r := a.engine.ToDocument(root)
			if !r.IsSuccess() {
				return verrs.BadRequest(serviceName, "%s: %s", args[0], r.Reason())
			}
			out, err := r.Value().WriteToBytes()
			if err != nil {
				return verrs.InternalServerError(serviceName, "encode document: %v", err)
			}
			return writeOutput(cmd.OutOrStdout(), output, out)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <in.bpmn>",
		Short: "Convert every process of a document and back, reporting each status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := readDocument(args[0])
			if err != nil {
				return err
			}
			failed, err := a.check(cmd.OutOrStdout(), defs)
			if err != nil {
				return err
			}
			if failed > 0 {
				return verrs.BadRequest(serviceName, "%d of %d processes failed", failed, len(defs.Processes))
			}
			return nil
		},
	}
}

// check prints one line per process and returns how many failed either
// direction.
func (a *app) check(w io.Writer, defs *bpmn.Definitions) (int, error) {
	report, err := a.engine.ToGraphAll(defs)
	if err != nil {
		return 0, verrs.BadRequest(serviceName, "%v", err)
	}

	failed := 0
	for i := 0; i < report.Len(); i++ {
		id, r := report.At(i)
		if !r.IsSuccess() {
			if r.IsFailure() {
				failed++
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", id, r.Kind(), r.Reason())
			continue
		}
		d := a.engine.ToDocument(r.Value())
		if d.IsFailure() {
			failed++
			fmt.Fprintf(w, "%s\t%s\tto document: %s\n", id, d.Kind(), d.Reason())
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", id, d.Kind())
	}
	return failed, nil
}

func readDocument(path string) (*bpmn.Definitions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, verrs.BadRequest(serviceName, "read %s: %v", path, err)
	}
	defs, err := bpmn.FromBytes(data)
	if err != nil {
		return nil, verrs.BadRequest(serviceName, "parse %s: %v", path, err)
	}
	return defs, nil
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return verrs.InternalServerError(serviceName, "write %s: %v", path, err)
	}
	return nil
}
