// mapquery/errors.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package mapquery

import "errors"

var (
	ErrQueriesNotInitialized = errors.New("Queries have not been initialized")
	ErrUnknownObjectType     = errors.New("Unknown map object type")
	ErrNoDatabase            = errors.New("No database")
)
