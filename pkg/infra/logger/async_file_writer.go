package logger

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"
)

const flushInterval = 2 * time.Second

// AsyncFileWriter buffers log lines through a channel so request paths
// never block on disk. When the channel is full the line is dropped and
// counted instead of blocking the caller.
type AsyncFileWriter struct {
	writer  *bufio.Writer
	file    *os.File
	lines   chan []byte
	done    chan struct{}
	stopped chan struct{}
	dropped atomic.Uint64
}

func NewAsyncFileWriter(logFile string, bufferSize int) (*AsyncFileWriter, error) {
	file, err := os.OpenFile(filepath.Clean(logFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, err
	}

	aw := &AsyncFileWriter{
		writer:  bufio.NewWriterSize(file, bufferSize),
		file:    file,
		lines:   make(chan []byte, 1000),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}

	go aw.run()

	return aw, nil
}

func (aw *AsyncFileWriter) Write(p []byte) (int, error) {
	line := make([]byte, len(p))
	copy(line, p)
	select {
	case aw.lines <- line:
	default:
		aw.dropped.Add(1)
	}
	return len(p), nil
}

func (aw *AsyncFileWriter) Dropped() uint64 {
	return aw.dropped.Load()
}

func (aw *AsyncFileWriter) run() {
	defer close(aw.stopped)

	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	for {
		select {
		case line := <-aw.lines:
			if _, err := aw.writer.Write(line); err != nil {
				fmt.Fprintln(os.Stderr, "log write failed:", err)
			}
		case <-ticker.C:
			_ = aw.writer.Flush()
		case <-aw.done:
			aw.drain()
			_ = aw.writer.Flush()
			return
		}
	}
}

// drain empties whatever is still queued so shutdown does not lose the
// last burst of entries.
func (aw *AsyncFileWriter) drain() {
	for {
		select {
		case line := <-aw.lines:
			_, _ = aw.writer.Write(line)
		default:
			return
		}
	}
}

func (aw *AsyncFileWriter) Close() {
	close(aw.done)
	<-aw.stopped
	_ = aw.file.Close()
}
