// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// DialMethod is one way of calling a contact.
type DialMethod struct {
	// Number is the dial string (URI, E.164 number, H.323 alias, ...).
	Number string `json:"number"`
	// CallType is the vendor call type, e.g. "Video" or "Audio".
	CallType string `json:"call_type,omitempty"`
}

// FolderRecord is a folder as reported by a remote directory service.
type FolderRecord struct {
	// ID uniquely identifies the folder within a directory scope.
	ID string `json:"id"`
	// Name is the display name.
	Name string `json:"name"`
	// ParentID is the declared parent folder. Empty means the folder that
	// was searched.
	ParentID string `json:"parent_id,omitempty"`
}

// ContactRecord is a contact as reported by a remote directory service.
type ContactRecord struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	FolderID    string       `json:"folder_id,omitempty"`
	DialMethods []DialMethod `json:"dial_methods,omitempty"`
}

// Query asks a remote directory service for one page of a scope.
type Query struct {
	// CorrelationID is echoed back with every page answering this query.
	CorrelationID string `json:"correlation_id"`
	// Scope names the directory partition, e.g. "Local" or "Corporate".
	Scope string `json:"scope"`
	// FolderID restricts the search to one folder; empty searches the root.
	FolderID string `json:"folder_id,omitempty"`
	Offset   int    `json:"offset"`
	Limit    int    `json:"limit"`
}

// Page is one batch of results answering a Query.
type Page struct {
	CorrelationID string          `json:"correlation_id"`
	Offset        int             `json:"offset"`
	Limit         int             `json:"limit"`
	TotalRows     int             `json:"total_rows"`
	Folders       []FolderRecord  `json:"folders,omitempty"`
	Contacts      []ContactRecord `json:"contacts,omitempty"`
}

// Len returns the number of records carried by the page.
func (p Page) Len() int {
	return len(p.Folders) + len(p.Contacts)
}
