// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"encoding/json"
	"testing"

	"github.com/MKhiriev/codec-directory/internal/router"
	"github.com/MKhiriev/codec-directory/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedbackPaths(items []FeedbackItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Path.String())
	}
	return out
}

func TestDecodeFrame_FeedbackEvent(t *testing.T) {
	frame, err := DecodeFrame([]byte(`{
		"jsonrpc": "2.0",
		"method": "xFeedback/Event",
		"params": {"Event": {"CallDisconnect": {"CauseType": {"Value": "LocalDisconnect"}, "CallId": {"Value": 3}}}, "Id": 1}
	}`))
	require.NoError(t, err)

	assert.Equal(t, FrameFeedback, frame.Kind)
	assert.Equal(t, []string{
		"Event",
		"Event/CallDisconnect",
		"Event/CallDisconnect/CallId",
		"Event/CallDisconnect/CallId/Value",
		"Event/CallDisconnect/CauseType",
		"Event/CallDisconnect/CauseType/Value",
	}, feedbackPaths(frame.Feedback))

	last := frame.Feedback[len(frame.Feedback)-1]
	assert.Equal(t, router.Path{"Event", "CallDisconnect", "CauseType", "Value"}, last.Path)
	assert.Equal(t, "LocalDisconnect", last.Payload)

	callID := frame.Feedback[3]
	assert.Equal(t, json.Number("3"), callID.Payload)
}

func TestDecodeFrame_FeedbackStatusArray(t *testing.T) {
	frame, err := DecodeFrame([]byte(`{
		"method": "xFeedback/Status",
		"params": {"Status": {"Call": [{"id": 1, "Status": "Connected"}, {"id": 2, "Status": "Ringing"}]}}
	}`))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Status",
		"Status/Call",
		"Status/Call/Status",
		"Status/Call/id",
		"Status/Call",
		"Status/Call/Status",
		"Status/Call/id",
	}, feedbackPaths(frame.Feedback))

	call, ok := frame.Feedback[1].Payload.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Connected", call["Status"])
}

func TestDecodeFrame_FeedbackMalformedParams(t *testing.T) {
	_, err := DecodeFrame([]byte(`{"method": "xFeedback/Event", "params": [1, 2]}`))
	assert.ErrorIs(t, err, ErrMalformedFrame)
}

func TestDecodeFrame_SearchResult(t *testing.T) {
	frame, err := DecodeFrame([]byte(`{
		"jsonrpc": "2.0",
		"id": "0192f2c4-7a1e-7c3e-9d1a-2b8c4e6f8a10",
		"result": {
			"ResultInfo": {"Offset": "0", "Limit": "15", "TotalRows": "21"},
			"Folder": [
				{"LocalId": "localGroupId-1", "Name": "Group 1"},
				{"FolderId": "f-2", "LocalId": "ignored", "Name": "Group 2", "ParentFolderId": "localGroupId-1"}
			],
			"Contact": [
				{"ContactId": "localContactId-1", "Name": "Room 1", "FolderId": "f-2",
				 "ContactMethod": [{"Number": "room1@example.com", "CallType": "Video"}]}
			]
		}
	}`))
	require.NoError(t, err)

	assert.Equal(t, FramePage, frame.Kind)
	assert.Equal(t, models.Page{
		CorrelationID: "0192f2c4-7a1e-7c3e-9d1a-2b8c4e6f8a10",
		Offset:        0,
		Limit:         15,
		TotalRows:     21,
		Folders: []models.FolderRecord{
			{ID: "localGroupId-1", Name: "Group 1"},
			{ID: "f-2", Name: "Group 2", ParentID: "localGroupId-1"},
		},
		Contacts: []models.ContactRecord{{
			ID:          "localContactId-1",
			Name:        "Room 1",
			FolderID:    "f-2",
			DialMethods: []models.DialMethod{{Number: "room1@example.com", CallType: "Video"}},
		}},
	}, frame.Page)
}

func TestDecodeFrame_SearchResultNumericFields(t *testing.T) {
	frame, err := DecodeFrame([]byte(`{"id": 7, "result": {"ResultInfo": {"Offset": 15, "Limit": 15, "TotalRows": 21}}}`))
	require.NoError(t, err)

	assert.Equal(t, FramePage, frame.Kind)
	assert.Equal(t, "7", frame.ID)
	assert.Equal(t, 15, frame.Page.Offset)
	assert.Equal(t, 21, frame.Page.TotalRows)
	assert.Zero(t, frame.Page.Len())
}

func TestDecodeFrame_SearchResultBadTotal(t *testing.T) {
	_, err := DecodeFrame([]byte(`{"id": "x", "result": {"ResultInfo": {"TotalRows": "lots"}}}`))
	assert.ErrorIs(t, err, ErrMalformedFrame)
}

func TestDecodeFrame_Ack(t *testing.T) {
	frame, err := DecodeFrame([]byte(`{"jsonrpc": "2.0", "id": "feedback-1", "result": {"Id": 0}}`))
	require.NoError(t, err)

	assert.Equal(t, FrameAck, frame.Kind)
	assert.Equal(t, "feedback-1", frame.ID)
}

func TestDecodeFrame_Error(t *testing.T) {
	frame, err := DecodeFrame([]byte(`{"id": "abc", "error": {"code": -32602, "message": "Invalid PhonebookType"}}`))
	require.NoError(t, err)

	assert.Equal(t, FrameError, frame.Kind)
	assert.Equal(t, "abc", frame.ID)
	assert.ErrorIs(t, frame.Err, ErrRemoteSearch)
	assert.Contains(t, frame.Err.Error(), "Invalid PhonebookType")
}

func TestDecodeFrame_OtherAndMalformed(t *testing.T) {
	frame, err := DecodeFrame([]byte(`{"jsonrpc": "2.0", "method": "xGet", "id": "q"}`))
	require.NoError(t, err)
	assert.Equal(t, FrameOther, frame.Kind)

	frame, err = DecodeFrame([]byte(`{"id": "q", "result": null}`))
	require.NoError(t, err)
	assert.Equal(t, FrameOther, frame.Kind)

	_, err = DecodeFrame([]byte(`not json`))
	assert.ErrorIs(t, err, ErrMalformedFrame)
}
