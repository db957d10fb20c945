// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package settingsstore

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// DebounceInterval is how long the watcher waits after a change before
// reloading, so a burst of writes produces one update.
const DebounceInterval = 50 * time.Millisecond

// watchMask covers in-place writes, atomic renames onto the file, and
// removal by Reset.
const watchMask = unix.IN_CLOSE_WRITE | unix.IN_MOVED_TO | unix.IN_DELETE

// Watch delivers the reloaded record each time the state file changes.
// The channel is closed when ctx is cancelled or the watcher hits an
// unrecoverable error.
//
// The watch is on the directory rather than the file: Save replaces the
// file by rename, which creates a new inode that a file-level watch
// would miss.
func (s *Store) Watch(ctx context.Context) (<-chan Record, error) {
	if err := os.MkdirAll(s.directory, 0o755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("initializing inotify: %w", err)
	}
	if _, err := unix.InotifyAddWatch(fd, s.directory, watchMask); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("watching %s: %w", s.directory, err)
	}

	updates := make(chan Record)
	go s.watchLoop(ctx, fd, updates)
	return updates, nil
}

// watchLoop polls the inotify fd with a short timeout so cancellation
// is noticed promptly.
func (s *Store) watchLoop(ctx context.Context, fd int, updates chan<- Record) {
	defer close(updates)
	defer unix.Close(fd)

	buffer := make([]byte, 4096)

	for {
		if ctx.Err() != nil {
			return
		}

		pollDescriptors := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		count, err := unix.Poll(pollDescriptors, 100)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			s.logger.Error("settings watcher poll failed", "error", err)
			return
		}
		if count == 0 {
			continue
		}

		bytesRead, err := unix.Read(fd, buffer)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			s.logger.Error("settings watcher read failed", "error", err)
			return
		}
		if !eventsMention(buffer[:bytesRead], FileName) {
			continue
		}

		select {
		case <-s.clock.After(DebounceInterval):
		case <-ctx.Done():
			return
		}
		drainEvents(fd, buffer)

		record, err := s.Load()
		if err != nil {
			// Transient: the next event retries.
			s.logger.Warn("reloading settings failed", "error", err)
			continue
		}

		select {
		case updates <- record:
		case <-ctx.Done():
			return
		}
	}
}

// eventsMention reports whether any inotify event in buffer names
// filename. Layout from inotify(7):
//
//	struct inotify_event {
//	    int32_t  wd;     // offset 0
//	    uint32_t mask;   // offset 4
//	    uint32_t cookie; // offset 8
//	    uint32_t len;    // offset 12
//	    char     name[]; // offset 16, null-padded to alignment
//	};
func eventsMention(buffer []byte, filename string) bool {
	offset := 0
	for offset+unix.SizeofInotifyEvent <= len(buffer) {
		nameLength := int(binary.NativeEndian.Uint32(buffer[offset+12 : offset+16]))
		eventSize := unix.SizeofInotifyEvent + nameLength
		if offset+eventSize > len(buffer) {
			break
		}
		if nameLength > 0 {
			name := nullTerminated(buffer[offset+unix.SizeofInotifyEvent : offset+eventSize])
			if name == filename {
				return true
			}
		}
		offset += eventSize
	}
	return false
}

func nullTerminated(data []byte) string {
	for i, b := range data {
		if b == 0 {
			return string(data[:i])
		}
	}
	return string(data)
}

// drainEvents discards queued events so a burst collapses into the
// single reload that follows.
func drainEvents(fd int, buffer []byte) {
	for {
		if _, err := unix.Read(fd, buffer); err != nil {
			return
		}
	}
}
