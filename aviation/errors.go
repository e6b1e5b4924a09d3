// aviation/errors.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import "errors"

var (
	ErrUnknownObjectType   = errors.New("Unknown map object type")
	ErrUnknownAirspaceType = errors.New("Unknown airspace type")
)
