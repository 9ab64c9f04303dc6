package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/golang/glog"

	"github.com/null8bit/log-archive-processor/archive"
	"github.com/null8bit/log-archive-processor/parser"
	"github.com/null8bit/log-archive-processor/sink"
	"github.com/null8bit/log-archive-processor/types"
	"github.com/null8bit/log-archive-processor/worker"
)

// channelCapacity bounds both the credentials and cookie-bundles channels,
// the backpressure point between the per-group parse goroutines and the
// two long-running sink workers.
const channelCapacity = 4096

// Orchestrator drives one archive through open, filter, group, parse and
// sink-insert.
type Orchestrator struct {
	Sink     sink.Sink
	Filter   *archive.EntryFilter
	Registry *archive.Registry

	Progress *worker.RunProgress
	Stats    *RunStats
}

// New builds an Orchestrator ready to run against archives.
func New(s sink.Sink, filter *archive.EntryFilter, registry *archive.Registry) *Orchestrator {
	return &Orchestrator{
		Sink:     s,
		Filter:   filter,
		Registry: registry,
		Progress: worker.NewRunProgress(),
		Stats:    NewRunStats(),
	}
}

// groupOutcome is the per-group result fed back to the run's error
// collector and stats recorder.
type groupOutcome struct {
	group            string
	numCredentials   int
	numCookieBundles int
	err              error
}

// Run processes the archive at path end to end. A fatal error (archive
// not found, unsupported format, sink unreachable) aborts the run and is
// returned; per-group and per-entry problems are logged and counted but
// do not stop the run.
func (o *Orchestrator) Run(ctx context.Context, path string) error {
	startTime := time.Now()

	exists, err := archive.Exists(path)
	if err != nil {
		return err
	}
	if !exists {
		return types.NotFoundError.NewWith(fmt.Sprintf("archive not found: %s", path))
	}
	if archive.ClassifyExtension(path) == archive.ExtensionUnsupported {
		return types.UnsupportedError.NewWith(fmt.Sprintf("unsupported archive format: %s", path))
	}

	fingerprint, err := archive.Fingerprint(path)
	if err != nil {
		return err
	}

	if o.Registry != nil {
		registered, err := o.Registry.IsRegistered(fingerprint)
		if err != nil {
			glog.Warningf("could not check registry for %s: %v", path, err)
		} else if registered {
			glog.Infof("archive %s (fingerprint %s) was already processed; processing again", path, fingerprint)
		}
	}

	reader, err := archive.Open(path)
	if err != nil {
		return err
	}
	defer reader.Close()

	groups := archive.Group(o.Filter, reader.EntryNames())
	o.Progress.SetTotalGroups(len(groups))

	txPW := make(chan []types.Credential, channelCapacity)
	txCK := make(chan []*types.CookieBundle, channelCapacity)

	pwDone := worker.Drain("credentials-sink", txPW, func(batch []types.Credential) error {
		return o.Sink.BulkInsertCredentials(ctx, batch)
	})
	ckDone := worker.Drain("cookies-sink", txCK, func(batch []*types.CookieBundle) error {
		return o.Sink.BulkInsertCookieBundles(ctx, batch)
	})

	outcomes := make(chan groupOutcome, len(groups))

	// Every entry is read on this goroutine, one group at a time: reader is
	// a single-owner resource and czip entry decompression is not
	// documented goroutine-safe. Only the already-read, owned buffers are
	// handed to the parse goroutines spawned below.
	var groupWG sync.WaitGroup
	for _, group := range groups {
		job, err := o.readGroup(reader, group)
		if err != nil {
			outcomes <- groupOutcome{group: group.Name, err: err}
			continue
		}

		groupWG.Add(1)
		go func(j *groupJob) {
			defer groupWG.Done()
			outcomes <- o.parseGroup(j, txPW, txCK)
		}(job)
	}

	go func() {
		groupWG.Wait()
		close(outcomes)
	}()

	var firstErr error
	for outcome := range outcomes {
		o.Progress.AddGroup(outcome.err != nil)
		if outcome.err != nil {
			glog.Warningf("group %s: %v", outcome.group, outcome.err)
			if firstErr == nil {
				firstErr = outcome.err
			}
			continue
		}
		o.Stats.RecordGroup(outcome.numCredentials, outcome.numCookieBundles)
	}

	close(txPW)
	close(txCK)

	if err := <-pwDone; err != nil {
		glog.Errorf("credentials sink worker reported an error: %v", err)
		if firstErr == nil {
			firstErr = err
		}
	}
	if err := <-ckDone; err != nil {
		glog.Errorf("cookies sink worker reported an error: %v", err)
		if firstErr == nil {
			firstErr = err
		}
	}

	o.Progress.Finished()

	if o.Registry != nil {
		if err := o.Registry.Register(fingerprint); err != nil {
			glog.Warningf("could not register fingerprint for %s: %v", path, err)
		}
	}

	elapsed := time.Since(startTime)
	glog.Infof("finished processing %s: %s groups, elapsed %s", path, humanize.Comma(int64(len(groups))), elapsed)

	return firstErr
}

// cookieFile is one cookie entry's content, already read off the archive
// reader and owned independently of it.
type cookieFile struct {
	name    string
	content []byte
}

// groupJob is one log group's parse input: the info/password/cookie
// entries already read into owned buffers, so the parse goroutines
// spawned over it never touch the archive reader.
type groupJob struct {
	name            string
	info            *types.LogInfo
	passwordContent []byte
	cookieFiles     []cookieFile
}

// readGroup classifies group's entries and reads the selected info,
// password and cookie entries off reader. It runs entirely on the caller's
// goroutine: reader is a single-owner resource and must never be called
// from two goroutines at once. Missing info or password entries are a
// per-group recoverable condition reported as an error, not a *groupJob.
func (o *Orchestrator) readGroup(reader *archive.Reader, group types.LogGroup) (*groupJob, error) {
	var infoEntry, passwordEntry string
	var cookieEntries []string

	for _, entry := range group.Entries {
		switch archive.ClassifyEntry(entry) {
		case archive.EntryInfo:
			if infoEntry == "" {
				infoEntry = entry
			}
		case archive.EntryPassword:
			if passwordEntry == "" {
				passwordEntry = entry
			}
		case archive.EntryCookies:
			cookieEntries = append(cookieEntries, entry)
		}
	}

	if infoEntry == "" {
		return nil, types.NotFoundError.NewWith(
			fmt.Sprintf("no info entry in group %s", group.Name), types.WithGroup(group.Name))
	}
	if passwordEntry == "" {
		return nil, types.NotFoundError.NewWith(
			fmt.Sprintf("no password entry in group %s", group.Name), types.WithGroup(group.Name))
	}

	infoContent, err := reader.ReadEntry(infoEntry)
	if err != nil {
		return nil, err
	}
	info := parser.ParseInfo(infoContent)

	pwContent, err := reader.ReadEntry(passwordEntry)
	if err != nil {
		return nil, err
	}

	job := &groupJob{name: group.Name, info: info, passwordContent: pwContent}
	for _, entry := range cookieEntries {
		content, err := reader.ReadEntry(entry)
		if err != nil {
			glog.Warningf("group %s: cannot read cookie entry %s: %v", group.Name, entry, err)
			continue
		}
		job.cookieFiles = append(job.cookieFiles, cookieFile{name: entry, content: content})
	}

	return job, nil
}

// parseGroup parses the already-read content of one group's job and fans
// the resulting records onto txPW/txCK. One goroutine parses the password
// file, one per cookie file; none of them touch the archive reader.
func (o *Orchestrator) parseGroup(job *groupJob, txPW chan<- []types.Credential, txCK chan<- []*types.CookieBundle) groupOutcome {
	var wg sync.WaitGroup
	var numCredentials, numCookieBundles int
	var mu sync.Mutex

	wg.Add(1)
	go func() {
		defer wg.Done()

		creds := parser.ParsePasswords(job.passwordContent, job.info)
		if len(creds) == 0 {
			return
		}

		txPW <- creds

		mu.Lock()
		numCredentials += len(creds)
		mu.Unlock()
	}()

	for _, cf := range job.cookieFiles {
		wg.Add(1)
		go func(cf cookieFile) {
			defer wg.Done()

			bundles, err := parser.ParseCookies(cf.content, job.info)
			if err != nil {
				glog.V(1).Infof("group %s: cookie entry %s: %v", job.name, cf.name, err)
				return
			}

			batch := make([]*types.CookieBundle, 0, len(bundles))
			for _, b := range bundles {
				batch = append(batch, b)
			}

			txCK <- batch

			mu.Lock()
			numCookieBundles += len(batch)
			mu.Unlock()
		}(cf)
	}

	wg.Wait()

	return groupOutcome{
		group:            job.name,
		numCredentials:   numCredentials,
		numCookieBundles: numCookieBundles,
	}
}
