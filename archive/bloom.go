package archive

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/willf/bloom"

	"github.com/null8bit/log-archive-processor/types"
)

const defaultBloomFalsePositiveRate = 0.01

const bloomEstimatedEntries = 1000000

const bloomSuffix = ".bloom"

// registryBloom is a bloom filter persisted alongside a registry file so a
// fresh process doesn't have to line-scan the whole registry just to
// answer "definitely not registered".
type registryBloom struct {
	path string
	bf   *bloom.BloomFilter
}

func loadRegistryBloom(registryPath string, fp float64) (*registryBloom, error) {
	path := registryPath + bloomSuffix

	exists, err := Exists(path)
	if err != nil {
		return nil, err
	}

	if !exists {
		bf := bloom.NewWithEstimates(bloomEstimatedEntries, fp)
		if err := populateFromRegistry(bf, registryPath); err != nil {
			return nil, err
		}
		return &registryBloom{path: path, bf: bf}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, types.IOError.NewWith(fmt.Sprintf("cannot open bloom filter %s: %v", path, err))
	}
	defer f.Close()

	bf := bloom.NewWithEstimates(bloomEstimatedEntries, fp)
	if _, err := bf.ReadFrom(f); err != nil {
		return nil, types.CorruptError.NewWith(fmt.Sprintf("cannot read bloom filter %s: %v", path, err))
	}

	return &registryBloom{path: path, bf: bf}, nil
}

// populateFromRegistry seeds a freshly created bloom filter from the
// existing registry file, if any, so a missing .bloom sidecar never makes
// IsRegistered false-negative for fingerprints the registry already has.
func populateFromRegistry(bf *bloom.BloomFilter, registryPath string) error {
	exists, err := Exists(registryPath)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	f, err := os.Open(registryPath)
	if err != nil {
		return types.IOError.NewWith(fmt.Sprintf("cannot open registry %s: %v", registryPath, err))
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	n := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		bf.AddString(line)
		n++
	}
	if err := scanner.Err(); err != nil {
		return types.IOError.NewWith(fmt.Sprintf("cannot scan registry %s: %v", registryPath, err))
	}

	glog.V(2).Infof("rebuilt bloom filter for %s from %d existing registry entries", registryPath, n)
	return nil
}

func (rb *registryBloom) mightContain(fingerprint string) bool {
	return rb.bf.TestString(fingerprint)
}

func (rb *registryBloom) add(fingerprint string) {
	rb.bf.AddString(fingerprint)
}

func (rb *registryBloom) persist() error {
	f, err := os.Create(rb.path)
	if err != nil {
		return types.IOError.NewWith(fmt.Sprintf("cannot create bloom filter %s: %v", rb.path, err))
	}
	defer f.Close()

	if _, err := rb.bf.WriteTo(f); err != nil {
		return types.IOError.NewWith(fmt.Sprintf("cannot write bloom filter %s: %v", rb.path, err))
	}
	glog.V(3).Infof("persisted registry bloom filter to %s", rb.path)
	return nil
}
