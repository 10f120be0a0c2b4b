// If you are AI: This file implements the flvedit subcommands.
// Read-only commands decode the file once; edits go through a workspace document.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"flvedit/internal/config"
	"flvedit/internal/core/bus"
	"flvedit/internal/core/container"
	"flvedit/internal/core/fieldtree"
	"flvedit/internal/core/protocol/flv"
	"flvedit/internal/core/workspace"
	"flvedit/internal/server"
)

// errUsage marks wrong argument counts or unparseable arguments.
var errUsage = errors.New("usage")

// command runs one subcommand with its arguments.
type command func(cfg *config.Config, args []string, out io.Writer) error

// commands maps subcommand names to implementations.
var commands = map[string]command{
	"info":   cmdInfo,
	"tree":   cmdTree,
	"hex":    cmdHex,
	"locate": cmdLocate,
	"delete": cmdDelete,
	"poke":   cmdPoke,
	"serve":  cmdServe,
}

// run dispatches args[0] to its command.
func run(cfg *config.Config, args []string, out io.Writer) error {
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
	return cmd(cfg, args[1:], out)
}

// wantArgs checks the argument count.
func wantArgs(args []string, n int, form string) error {
	if len(args) != n {
		return fmt.Errorf("%w: %s", errUsage, form)
	}
	return nil
}

// parseTarget parses "header" or a tag index.
func parseTarget(s string) (header bool, index int, err error) {
	if strings.EqualFold(s, "header") {
		return true, 0, nil
	}
	index, err = strconv.Atoi(s)
	if err != nil {
		return false, 0, fmt.Errorf("%w: %q is neither a tag index nor \"header\"", errUsage, s)
	}
	return false, index, nil
}

// cmdInfo prints the header, the tag list and any decode issues.
func cmdInfo(cfg *config.Config, args []string, out io.Writer) error {
	if err := wantArgs(args, 1, "info <file>"); err != nil {
		return err
	}
	ct, err := container.Load(args[0], cfg.Decode.Options())
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "file:   %s (%d bytes)\n", ct.Path(), ct.Size())
	if h := ct.Header(); h != nil {
		fmt.Fprintf(out, "header: %s v%d, %s, data offset %d\n",
			h.Signature, h.Version, flv.TypeFlagsName(h.Flags), h.DataOffset)
	} else {
		fmt.Fprintln(out, "header: missing")
	}
	fmt.Fprintf(out, "tags:   %d\n", ct.Len())
	for i, t := range ct.Tags() {
		fmt.Fprintf(out, "%6d  %s\n", i, container.Summary(t))
	}
	if issues := ct.Issues(); len(issues) > 0 {
		fmt.Fprintf(out, "issues: %d\n", len(issues))
		for _, is := range issues {
			fmt.Fprintf(out, "  %s\n", is)
		}
	}
	return nil
}

// cmdTree prints the field tree of one tag or the header.
func cmdTree(cfg *config.Config, args []string, out io.Writer) error {
	if err := wantArgs(args, 2, "tree <file> <index|header>"); err != nil {
		return err
	}
	header, index, err := parseTarget(args[1])
	if err != nil {
		return err
	}
	ct, err := container.Load(args[0], cfg.Decode.Options())
	if err != nil {
		return err
	}

	var tr *fieldtree.Tree
	if header {
		tr, err = ct.HeaderTree()
	} else {
		tr, err = ct.Tree(index)
	}
	if err != nil {
		return err
	}
	tr.Walk(func(id, depth int) {
		n := tr.Node(id)
		fmt.Fprintf(out, "%s%-*s 0x%08x %6d  %s\n",
			strings.Repeat("  ", depth), 24-2*depth, n.Name, n.Offset, n.Size, n.Display())
	})
	return nil
}

// cmdLocate prints the field that owns one byte offset (decimal or 0x hex).
func cmdLocate(cfg *config.Config, args []string, out io.Writer) error {
	if err := wantArgs(args, 2, "locate <file> <offset>"); err != nil {
		return err
	}
	offset, err := strconv.ParseInt(args[1], 0, 64)
	if err != nil {
		return fmt.Errorf("%w: offset %q is not a number", errUsage, args[1])
	}
	ct, err := container.Load(args[0], cfg.Decode.Options())
	if err != nil {
		return err
	}
	loc, err := ct.Locate(offset)
	if err != nil {
		return err
	}

	owner := "header"
	if loc.Index >= 0 {
		owner = fmt.Sprintf("tag %d", loc.Index)
	}
	fmt.Fprintf(out, "0x%08x  %s  %s  [0x%x+%d] row %d  %s\n",
		loc.Offset, owner, strings.Join(loc.Path, "/"), loc.Start, loc.Size, loc.Row, loc.Value)
	return nil
}

// cmdHex dumps the raw bytes of one tag or the header.
func cmdHex(cfg *config.Config, args []string, out io.Writer) error {
	if err := wantArgs(args, 2, "hex <file> <index|header>"); err != nil {
		return err
	}
	header, index, err := parseTarget(args[1])
	if err != nil {
		return err
	}
	ct, err := container.Load(args[0], cfg.Decode.Options())
	if err != nil {
		return err
	}

	if header {
		data, err := ct.HeaderBytes()
		if err != nil {
			return err
		}
		return container.WriteHex(out, data, 0)
	}
	data, err := ct.TagBytes(index)
	if err != nil {
		return err
	}
	return container.WriteHex(out, data, ct.Tags()[index].Offset)
}

// openDocument opens path as a standalone workspace document.
func openDocument(cfg *config.Config, path string) (*workspace.Document, error) {
	return workspace.Open(path, path, cfg.Decode.Options(), cfg.Editor.Selector(), nil)
}

// cmdDelete removes one tag and reports the strategy used.
func cmdDelete(cfg *config.Config, args []string, out io.Writer) error {
	if err := wantArgs(args, 2, "delete <file> <index>"); err != nil {
		return err
	}
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: tag index %q", errUsage, args[1])
	}
	doc, err := openDocument(cfg, args[0])
	if err != nil {
		return err
	}

	strategy, err := doc.DeleteTag(index)
	if err != nil {
		return err
	}
	return doc.View(func(ct *container.Container) error {
		fmt.Fprintf(out, "deleted tag %d using %s; %d tags, %d bytes\n", index, strategy, ct.Len(), ct.Size())
		return nil
	})
}

// cmdPoke overwrites one byte. The offset accepts decimal or 0x-prefixed hex.
func cmdPoke(cfg *config.Config, args []string, out io.Writer) error {
	if err := wantArgs(args, 3, "poke <file> <offset> <hex byte>"); err != nil {
		return err
	}
	offset, err := strconv.ParseInt(args[1], 0, 64)
	if err != nil {
		return fmt.Errorf("%w: offset %q", errUsage, args[1])
	}
	value, err := container.ParseByte(args[2])
	if err != nil {
		return err
	}
	doc, err := openDocument(cfg, args[0])
	if err != nil {
		return err
	}

	if err := doc.Poke(offset, value); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote 0x%02x at 0x%x\n", value, offset)
	return nil
}

// openAll opens the command line files and the configured documents into registry.
func openAll(cfg *config.Config, registry *workspace.Registry, paths []string) error {
	docs := append([]config.DocumentConfig(nil), cfg.Documents...)
	for _, p := range paths {
		docs = append(docs, config.DocumentConfig{Path: p})
	}
	for _, d := range docs {
		doc, err := registry.Open(d.DisplayName(), d.Path)
		if err != nil {
			return err
		}
		log.Printf("Opened %s as %q", doc.Path(), doc.Name())
	}
	return nil
}

// cmdServe serves the HTTP API and change events until SIGINT or SIGTERM.
func cmdServe(cfg *config.Config, args []string, out io.Writer) error {
	registry := workspace.NewRegistry(cfg.Decode.Options(), cfg.Editor.Selector(), bus.NewHub())
	if err := openAll(cfg, registry, args); err != nil {
		return err
	}

	// Create server
	srv := server.New(cfg, registry)

	// Create shutdown handler
	shutdownHandler := server.NewShutdownHandler(srv, context.Background())

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Serving %d documents on %s", registry.Count(), srv.Addr())
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for shutdown signal
	waitErr := make(chan error, 1)
	go func() { waitErr <- shutdownHandler.Wait() }()
	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case err := <-waitErr:
		if err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}

	fmt.Fprintln(out, "Server shut down cleanly")
	return nil
}
