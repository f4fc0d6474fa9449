// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"sync"

	"github.com/MKhiriev/codec-directory/internal/directory"
	"github.com/MKhiriev/codec-directory/internal/event"
	"github.com/MKhiriev/codec-directory/internal/logger"
)

type directoryBrowser struct {
	mu    sync.Mutex
	root  *directory.Folder
	stack []*directory.Folder

	// watched is the folder whose ContentsChanged the browser listens to;
	// it is always the current folder.
	watched *directory.Folder
	watchID event.Subscription

	clearedSource *event.Event[string]
	clearedID     event.Subscription

	onPathChanged         *event.Event[*directory.Folder]
	onPathContentsChanged *event.Event[*directory.Folder]

	logger *logger.Logger
}

// NewDirectoryBrowser returns a browser positioned at root.
func NewDirectoryBrowser(root *directory.Folder, log *logger.Logger) DirectoryBrowser {
	l := log.WithComponent("directory_browser")
	b := &directoryBrowser{
		root:                  root,
		stack:                 []*directory.Folder{root},
		onPathChanged:         event.New[*directory.Folder]("browser.path_changed", l),
		onPathContentsChanged: event.New[*directory.Folder]("browser.path_contents_changed", l),
		logger:                l,
	}

	b.mu.Lock()
	b.watchLocked(root)
	b.mu.Unlock()

	return b
}

// NewScopeBrowser returns a browser over the tree of scope that returns to
// the root whenever the synchronizer clears that scope.
func NewScopeBrowser(synchronizer DirectorySynchronizer, scope string, log *logger.Logger) DirectoryBrowser {
	b := NewDirectoryBrowser(synchronizer.GetRoot(scope), log).(*directoryBrowser)

	b.clearedSource = synchronizer.OnCleared()
	b.clearedID = b.clearedSource.Subscribe(func(cleared string) {
		if cleared == scope {
			b.GoToRoot()
		}
	})

	return b
}

func (b *directoryBrowser) currentLocked() *directory.Folder {
	if len(b.stack) == 0 {
		return b.root
	}
	return b.stack[len(b.stack)-1]
}

// watchLocked moves the single contents subscription onto f.
func (b *directoryBrowser) watchLocked(f *directory.Folder) {
	if b.watched == f {
		return
	}
	if b.watched != nil {
		b.watched.ContentsChanged().Unsubscribe(b.watchID)
		b.watched, b.watchID = nil, 0
	}
	if f == nil {
		return
	}
	b.watched = f
	b.watchID = f.ContentsChanged().Subscribe(b.contentsChanged)
}

func (b *directoryBrowser) contentsChanged(f *directory.Folder) {
	b.mu.Lock()
	current := b.currentLocked() == f
	b.mu.Unlock()

	// an emit already in flight may reach us after we moved on
	if current {
		b.onPathContentsChanged.Emit(f)
	}
}

func (b *directoryBrowser) GetCurrentFolder() *directory.Folder {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentLocked()
}

func (b *directoryBrowser) Path() []*directory.Folder {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*directory.Folder(nil), b.stack...)
}

func (b *directoryBrowser) EnterFolder(folder *directory.Folder) {
	b.mu.Lock()
	if folder == nil || folder == b.currentLocked() {
		b.mu.Unlock()
		return
	}
	b.stack = append(b.stack, folder)
	b.watchLocked(folder)
	b.mu.Unlock()

	b.logger.Debug().Str("folder_id", folder.ID()).Msg("entered folder")
	b.onPathChanged.Emit(folder)
}

func (b *directoryBrowser) GoUp() {
	b.mu.Lock()
	if len(b.stack) <= 1 {
		b.mu.Unlock()
		b.GoToRoot()
		return
	}
	b.stack[len(b.stack)-1] = nil
	b.stack = b.stack[:len(b.stack)-1]
	current := b.currentLocked()
	b.watchLocked(current)
	b.mu.Unlock()

	b.onPathChanged.Emit(current)
}

func (b *directoryBrowser) GoToRoot() {
	b.mu.Lock()
	b.stack = []*directory.Folder{b.root}
	b.watchLocked(b.root)
	b.mu.Unlock()

	b.onPathChanged.Emit(b.root)
}

func (b *directoryBrowser) OnPathChanged() *event.Event[*directory.Folder] {
	return b.onPathChanged
}

func (b *directoryBrowser) OnPathContentsChanged() *event.Event[*directory.Folder] {
	return b.onPathContentsChanged
}

func (b *directoryBrowser) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.watchLocked(nil)
	if b.clearedSource != nil {
		b.clearedSource.Unsubscribe(b.clearedID)
		b.clearedSource, b.clearedID = nil, 0
	}
}
