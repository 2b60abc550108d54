package server

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch re-analyzes G-code files in the data directory as they are
// written, pushing a summary to SSE subscribers on every change. It
// blocks until ctx is done.
func (s *Server) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(s.dataDir); err != nil {
		return fmt.Errorf("watch %s: %w", s.dataDir, err)
	}
	s.log.Info("watching data directory", zap.String("dir", s.dataDir))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if !s.watched(ev.Name) {
				continue
			}
			watchEventsTotal.Inc()
			s.analyzeChanged(ev.Name)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("watch error", zap.Error(err))
		}
	}
}

// watched reports whether a changed file is worth re-analyzing.
func (s *Server) watched(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range s.analyzer.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

func (s *Server) analyzeChanged(path string) {
	res, err := s.analyzer.AnalyzeFile(path)
	if err != nil {
		s.log.Warn("analyze changed file", zap.String("file", path), zap.Error(err))
		return
	}
	s.log.Info("analyzed changed file",
		zap.String("file", path),
		zap.Int("errors", res.Errors()),
		zap.Int("warnings", res.Warnings()))

	observe(res)
	s.record(res)
	s.publish(res)
}
