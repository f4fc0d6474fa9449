// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter connects the feedback router and the directory
// synchronizer to real codecs and directory services.
//
// Inbound traffic is decoded into (path, payload) pairs for a
// [FeedbackDispatcher] and into result pages for a [PageSink]. Outbound
// directory searches go through a [QuerySender]. Two transports ship with
// the package: a websocket JSON-RPC session speaking the codec xAPI
// ([NewWSSession]) and an HTTP directory service client ([NewHTTPDirectory]).
package adapter

import (
	"context"

	"github.com/MKhiriev/codec-directory/internal/router"
	"github.com/MKhiriev/codec-directory/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// QuerySender issues one directory page request. Implementations must not
// block waiting for the answer: results come back through a PageSink.
type QuerySender interface {
	SendQuery(ctx context.Context, q models.Query) error
}

// PageSink receives decoded directory result pages.
type PageSink interface {
	// HandleIncomingPage folds one page answering correlationID.
	HandleIncomingPage(ctx context.Context, correlationID string, folders []models.FolderRecord, contacts []models.ContactRecord, reportedTotal int) error

	// HandleSearchFailure reports that the remote side rejected or could
	// not answer the search correlationID.
	HandleSearchFailure(ctx context.Context, correlationID string, cause error)
}

// FeedbackDispatcher receives decoded status and event feedback.
type FeedbackDispatcher interface {
	Dispatch(path router.Path, payload any)
}
