// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package router

import "strings"

// Path is an ordered sequence of segments addressing a feedback category,
// e.g. Path{"Status", "SIP", "Registration", "Status"}.
type Path []string

// ParsePath splits an xPath style string ("Status/SIP/Registration" or
// "/Status/SIP") into a Path. Empty segments are dropped.
func ParsePath(s string) Path {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == '/' || r == ' ' })
	if len(fields) == 0 {
		return Path{}
	}
	return Path(fields)
}

// String renders the path with "/" separators.
func (p Path) String() string {
	return strings.Join(p, "/")
}

// Append returns a new path with segments appended; p is never aliased.
func (p Path) Append(segments ...string) Path {
	out := make(Path, 0, len(p)+len(segments))
	out = append(out, p...)
	return append(out, segments...)
}
