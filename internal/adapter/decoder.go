// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/MKhiriev/codec-directory/internal/router"
	"github.com/MKhiriev/codec-directory/models"
)

const (
	methodFeedbackEvent  = "xFeedback/Event"
	methodFeedbackStatus = "xFeedback/Status"
)

// FrameKind classifies a decoded codec frame.
type FrameKind int

const (
	// FrameOther is any frame the session does not act on.
	FrameOther FrameKind = iota
	// FrameFeedback carries status or event notifications.
	FrameFeedback
	// FramePage answers a phonebook search.
	FramePage
	// FrameError reports a failed request.
	FrameError
	// FrameAck is a successful result that is not a page.
	FrameAck
)

// FeedbackItem is one (path, payload) pair produced by flattening a
// feedback notification.
type FeedbackItem struct {
	Path    router.Path
	Payload any
}

// Frame is a decoded JSON-RPC message from a codec.
type Frame struct {
	Kind     FrameKind
	ID       string
	Feedback []FeedbackItem
	Page     models.Page
	Err      error
}

type rpcFrame struct {
	ID     flexString      `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// DecodeFrame parses one websocket message.
func DecodeFrame(data []byte) (Frame, error) {
	var raw rpcFrame
	if err := json.Unmarshal(data, &raw); err != nil {
		return Frame{}, fmt.Errorf("%w: %w", ErrMalformedFrame, err)
	}

	f := Frame{ID: string(raw.ID)}

	switch {
	case raw.Error != nil:
		f.Kind = FrameError
		f.Err = fmt.Errorf("%w: %s (code %d)", ErrRemoteSearch, raw.Error.Message, raw.Error.Code)
		return f, nil

	case raw.Method == methodFeedbackEvent || raw.Method == methodFeedbackStatus:
		items, err := flattenFeedback(raw.Params)
		if err != nil {
			return Frame{}, err
		}
		f.Kind = FrameFeedback
		f.Feedback = items
		return f, nil

	case len(raw.Result) > 0 && !bytes.Equal(raw.Result, []byte("null")):
		page, ok, err := decodeSearchResult(raw.Result)
		if err != nil {
			return Frame{}, err
		}
		if !ok {
			f.Kind = FrameAck
			return f, nil
		}
		page.CorrelationID = f.ID
		f.Kind = FramePage
		f.Page = page
		return f, nil
	}

	return f, nil
}

// flattenFeedback turns notification params into (path, payload) pairs.
// Every object is emitted at its own path before its members; scalars are
// emitted as leaves. Array elements share the array's path. The
// subscription "Id" member of params is not feedback and is skipped.
func flattenFeedback(params json.RawMessage) ([]FeedbackItem, error) {
	var root map[string]any
	dec := json.NewDecoder(bytes.NewReader(params))
	dec.UseNumber()
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: feedback params: %w", ErrMalformedFrame, err)
	}
	delete(root, "Id")

	var items []FeedbackItem
	walkFeedback(router.Path{}, root, &items)
	return items, nil
}

func walkFeedback(path router.Path, v any, items *[]FeedbackItem) {
	switch node := v.(type) {
	case map[string]any:
		if len(path) > 0 {
			*items = append(*items, FeedbackItem{Path: path, Payload: node})
		}
		keys := make([]string, 0, len(node))
		for k := range node {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			walkFeedback(path.Append(k), node[k], items)
		}
	case []any:
		for _, elem := range node {
			walkFeedback(path, elem, items)
		}
	default:
		if len(path) > 0 {
			*items = append(*items, FeedbackItem{Path: path, Payload: node})
		}
	}
}

type searchResult struct {
	ResultInfo *struct {
		Offset    flexInt `json:"Offset"`
		Limit     flexInt `json:"Limit"`
		TotalRows flexInt `json:"TotalRows"`
	} `json:"ResultInfo"`
	Folder []struct {
		FolderID       flexString `json:"FolderId"`
		LocalID        flexString `json:"LocalId"`
		Name           string     `json:"Name"`
		ParentFolderID flexString `json:"ParentFolderId"`
	} `json:"Folder"`
	Contact []struct {
		ContactID     flexString `json:"ContactId"`
		Name          string     `json:"Name"`
		FolderID      flexString `json:"FolderId"`
		ContactMethod []struct {
			Number   string `json:"Number"`
			CallType string `json:"CallType"`
		} `json:"ContactMethod"`
	} `json:"Contact"`
}

// decodeSearchResult reports ok=false for results without ResultInfo.
func decodeSearchResult(data json.RawMessage) (models.Page, bool, error) {
	var res searchResult
	if err := json.Unmarshal(data, &res); err != nil {
		return models.Page{}, false, fmt.Errorf("%w: search result: %w", ErrMalformedFrame, err)
	}
	if res.ResultInfo == nil {
		return models.Page{}, false, nil
	}

	page := models.Page{
		Offset:    int(res.ResultInfo.Offset),
		Limit:     int(res.ResultInfo.Limit),
		TotalRows: int(res.ResultInfo.TotalRows),
	}

	for _, f := range res.Folder {
		id := string(f.FolderID)
		if id == "" {
			id = string(f.LocalID)
		}
		page.Folders = append(page.Folders, models.FolderRecord{
			ID:       id,
			Name:     f.Name,
			ParentID: string(f.ParentFolderID),
		})
	}

	for _, c := range res.Contact {
		rec := models.ContactRecord{
			ID:       string(c.ContactID),
			Name:     c.Name,
			FolderID: string(c.FolderID),
		}
		for _, m := range c.ContactMethod {
			rec.DialMethods = append(rec.DialMethods, models.DialMethod{Number: m.Number, CallType: m.CallType})
		}
		page.Contacts = append(page.Contacts, rec)
	}

	return page, true, nil
}

// flexInt accepts both 21 and "21"; codecs render xAPI integers as strings.
type flexInt int

func (n *flexInt) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(b, `"`))
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not an integer: %s", b)
	}
	*n = flexInt(v)
	return nil
}

// flexString accepts strings and numbers.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	*s = flexString(b)
	return nil
}
