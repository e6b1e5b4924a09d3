// sqldb/errors.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sqldb

import "errors"

var (
	ErrUnboundParameter = errors.New("Query parameter not bound")
	ErrUnknownDriver    = errors.New("Unknown database driver")
	ErrQueryClosed      = errors.New("Query has been closed")
)
