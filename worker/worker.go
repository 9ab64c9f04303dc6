// Copyright (c) 2013 Uwe Hoffmann. All rights reserved.

/*
Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are
met:

   * Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.
   * Redistributions in binary form must reproduce the above
copyright notice, this list of conditions and the following disclaimer
in the documentation and/or other materials provided with the
distribution.
   * Neither the name of Google Inc. nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
OWNER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/

// Package worker provides a generic bounded-channel drain runner: one
// long-lived goroutine reading batches off a channel until it's closed,
// collecting the first error it hits along the way.
package worker

import (
	"github.com/golang/glog"
)

// BatchFunc processes one batch read off a worker's input channel.
type BatchFunc[T any] func(T) error

// Drain starts a single goroutine named name that ranges over in, calling
// process for every value until the channel is closed, then reports the
// first error encountered (or nil) on the returned channel. The channel
// receives exactly one value, once the goroutine has fully drained in and
// exited, mirroring the teacher's slave/closeC handshake.
func Drain[T any](name string, in <-chan T, process BatchFunc[T]) <-chan error {
	done := make(chan error, 1)

	go func() {
		glog.Infof("starting worker %s", name)

		var nrProcessed int
		var firstErr error

		for item := range in {
			if err := process(item); err != nil {
				glog.Errorf("%s: failed to process batch: %v", name, err)
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			nrProcessed++
		}

		glog.Infof("exiting worker %s, processed %d batches", name, nrProcessed)
		done <- firstErr
	}()

	return done
}
