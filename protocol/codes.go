// Copyright 2024 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package protocol implements the wire grammar: parsing inbound packets
// into a tagged Command, formatting outbound replies, and the exhaustive
// error-code taxonomy shared by every phase handler.
package protocol

import "fmt"

// Code is one of the taxonomy values from the error code table. Codes are
// grouped by band: 1xx phase-gating, 2xx malformed packet, 3xx placement
// semantics, 4xx shot semantics.
type Code int

// Error code taxonomy, exactly as specified.
const (
	CodeInvalidForBegin      Code = 100
	CodeInvalidForInitialize Code = 101
	CodeInvalidForPlay       Code = 102

	CodeMalformedBegin      Code = 200
	CodeMalformedInitialize Code = 201
	CodeMalformedShoot      Code = 202

	CodeInvalidPieceType Code = 300
	CodeInvalidRotation  Code = 301
	CodeShipOutOfBounds  Code = 302
	CodeShipsOverlap     Code = 303

	CodeShotOutOfBounds Code = 400
	CodeShotRepeated    Code = 401
)

// Error carries a taxonomy code. It is the error type returned by the
// parsers in protocol and by board.Validate, and the session controller
// builds one for shot errors; the controller's only job on receiving one is
// to format it as "E <code>" and leave state untouched.
type Error struct {
	Code Code
}

func (e *Error) Error() string {
	return fmt.Sprintf("protocol error %d", e.Code)
}

// NewError wraps a taxonomy code as an error.
func NewError(code Code) error {
	return &Error{Code: code}
}

// CodeOf extracts the taxonomy code from an error produced by NewError,
// reporting ok=false for any other error (including nil).
func CodeOf(err error) (code Code, ok bool) {
	pe, ok := err.(*Error)
	if !ok {
		return 0, false
	}
	return pe.Code, true
}
