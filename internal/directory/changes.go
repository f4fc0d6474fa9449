// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package directory

// MergeResult summarises one Merge or Clear.
type MergeResult struct {
	FoldersAdded    int
	FoldersUpdated  int
	ContactsAdded   int
	ContactsUpdated int
	// Misplaced counts records attached to the root because their declared
	// parent was unknown.
	Misplaced int

	changes changeSet
}

// Changed returns the folders whose direct contents changed, in the order
// they were first touched.
func (r MergeResult) Changed() []*Folder {
	return append([]*Folder(nil), r.changes.folders...)
}

// Notify raises ContentsChanged on every changed folder. Call it without
// holding any lock that listeners might need.
func (r MergeResult) Notify() {
	for _, f := range r.changes.folders {
		f.contentsChanged.Emit(f)
	}
}

type changeSet struct {
	folders []*Folder
}

func (c *changeSet) mark(f *Folder) {
	for _, seen := range c.folders {
		if seen == f {
			return
		}
	}
	c.folders = append(c.folders, f)
}
