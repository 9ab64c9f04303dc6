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

package main

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/golang/glog"
	"github.com/gonuts/flag"
	"github.com/uwedeportivo/commander"

	"github.com/null8bit/log-archive-processor/archive"
	"github.com/null8bit/log-archive-processor/config"
	"github.com/null8bit/log-archive-processor/orchestrator"
	"github.com/null8bit/log-archive-processor/sink"
	"github.com/null8bit/log-archive-processor/types"
)

var cfg *config.Config
var cmd *commander.Commander

func init() {
	cmd = new(commander.Commander)
	cmd.Name = os.Args[0]
	cmd.Commands = make([]*commander.Command, 1)
	cmd.Flag = flag.NewFlagSet("logharvest", flag.ExitOnError)

	cmd.Commands[0] = &commander.Command{
		Run:       processArchive,
		UsageLine: "process <archive.zip>",
		Short:     "Extracts credentials and cookies from a stealer-log archive into the configured sink.",
		Long: `
Opens the given ZIP archive, groups its entries by log folder, and for
every folder that has both a system-info file and a password-dump file
parses its credentials and (if present) its cookie exports, streaming both
into the configured Elasticsearch sink.`,
		Flag: *flag.NewFlagSet("logharvest-process", flag.ExitOnError),
	}
}

func buildFilterOptions() types.FilterOptions {
	var patterns []*regexp.Regexp
	for _, p := range cfg.Archive.NamePatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			glog.Warningf("ignoring invalid name pattern %q: %v", p, err)
			continue
		}
		patterns = append(patterns, re)
	}
	return types.FilterOptions{
		NamePatterns: patterns,
		Extensions:   cfg.Archive.Extensions,
	}
}

func processArchive(cmd *commander.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one archive path, got %d", len(args))
	}

	elasticSink, err := sink.NewElasticSink(cfg.Sink.Addresses, cfg.Sink.CredentialsIndex, cfg.Sink.CookieBundleIndex)
	if err != nil {
		return err
	}
	defer elasticSink.Close()

	var registry *archive.Registry
	if cfg.Archive.RegistryPath != "" {
		registry, err = archive.OpenRegistry(cfg.Archive.RegistryPath)
		if err != nil {
			return err
		}
	}

	filter := archive.NewEntryFilter(buildFilterOptions())
	orc := orchestrator.New(elasticSink, filter, registry)

	startTime := time.Now()
	if err := orc.Run(context.Background(), args[0]); err != nil {
		return err
	}

	orc.Stats.WriteSummary(os.Stdout)
	glog.Infof("total elapsed time: %s", time.Since(startTime))
	return nil
}

func main() {
	var err error
	cfg, err = config.Load("logharvest.ini")
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading logharvest ini failed: %v\n", err)
		os.Exit(1)
	}

	if err := cmd.Flag.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "parsing cmd line flags failed: %v\n", err)
		os.Exit(1)
	}

	args := cmd.Flag.Args()
	if err := cmd.Run(args); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
