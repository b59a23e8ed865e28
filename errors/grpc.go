// Copyright 2024 The Solaris Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package errors

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var grpcToErrors = map[codes.Code]error{
	codes.OK:                 nil,
	codes.Canceled:           ErrCanceled,
	codes.DeadlineExceeded:   ErrDeadlineExceeded,
	codes.InvalidArgument:    ErrInvalid,
	codes.Unavailable:        ErrClosed,
	codes.FailedPrecondition: ErrInvalid,
}

var errorsToCode = map[error]codes.Code{
	ErrDeadlineExceeded: codes.DeadlineExceeded,
	ErrCanceled:         codes.Canceled,
	ErrInvalid:          codes.InvalidArgument,
	ErrClosed:           codes.Unavailable,
	ErrInternal:         codes.Internal,
}

// FromGRPCError receives a gRPC error (code-based) and returns one of the
// package sentinels (ErrDeadlineExceeded, ErrCanceled...)
func FromGRPCError(err error) error {
	if err, ok := grpcToErrors[status.Code(err)]; ok {
		return err
	}
	return ErrInternal
}

// GRPCStatusCode returns the gRPC error status code by the error provided
func GRPCStatusCode(err error) codes.Code {
	code := status.Code(err)
	if code != codes.Unknown {
		return code
	}
	if code, ok := errorsToCode[err]; ok {
		return code
	}
	for e, c := range errorsToCode {
		if errors.Is(err, e) {
			return c
		}
	}
	return codes.Internal
}

// GRPCWrap turns err into a gRPC code-based error, so a server racing an RPC
// against a deadline can surface the outcome over the wire:
//
//	func RemoteCall(pbRequest *pb.Request) (*pb.Response, error) {
//	   ...
//	   return response, errors.GRPCWrap(err)
//	}
func GRPCWrap(err error) error {
	if code := status.Code(err); code != codes.Unknown {
		return err // return err as is, it is already a gRPC formed error
	}
	return status.Error(GRPCStatusCode(err), err.Error())
}
