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

package worker

import (
	"sync"
)

// RunProgress tracks how many log groups an Orchestrator run has worked
// through so far, and how many of those hit an error, so a caller can
// poll progress without synchronizing on the run's completion.
type RunProgress struct {
	mutex sync.Mutex

	totalGroups int
	knowTotal   bool

	groupsSoFar int
	errorGroups int
	finished    bool
}

// NewRunProgress returns a zeroed RunProgress.
func NewRunProgress() *RunProgress {
	return &RunProgress{}
}

// SetTotalGroups records how many groups this run expects to process.
func (rp *RunProgress) SetTotalGroups(value int) {
	rp.mutex.Lock()
	defer rp.mutex.Unlock()

	rp.totalGroups = value
	rp.knowTotal = true
}

// AddGroup records that one more group has been worked through, and
// whether it ended in error.
func (rp *RunProgress) AddGroup(erred bool) {
	rp.mutex.Lock()
	defer rp.mutex.Unlock()

	rp.groupsSoFar++
	if erred {
		rp.errorGroups++
	}
}

// Finished marks the run as complete.
func (rp *RunProgress) Finished() {
	rp.mutex.Lock()
	defer rp.mutex.Unlock()

	rp.finished = true
}

// Snapshot is a point-in-time copy of a RunProgress, safe to read without
// holding any lock.
type Snapshot struct {
	TotalGroups int
	KnowTotal   bool
	GroupsSoFar int
	ErrorGroups int
	Finished    bool
}

// Get returns a Snapshot of the current progress.
func (rp *RunProgress) Get() Snapshot {
	rp.mutex.Lock()
	defer rp.mutex.Unlock()

	return Snapshot{
		TotalGroups: rp.totalGroups,
		KnowTotal:   rp.knowTotal,
		GroupsSoFar: rp.groupsSoFar,
		ErrorGroups: rp.errorGroups,
		Finished:    rp.finished,
	}
}
