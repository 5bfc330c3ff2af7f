// Package task carries the explicit, per-run configuration that every
// engine and pipeline stage is handed rather than reaching for
// process-wide state. A single Config value is built once from CLI
// flags (or test fixtures) and threaded down the call tree.
package task

import (
	"fmt"

	"github.com/coldcellar/bitguard/internal/bitguard/calibrate"
	"github.com/coldcellar/bitguard/internal/bitguard/checksum"
	"github.com/coldcellar/bitguard/internal/bitguard/distance"
	"github.com/sirupsen/logrus"
)

// RestoreMode selects which instruction kinds the restore engine
// targets.
type RestoreMode int

const (
	// ModeAll processes NOHITS, BLENGTH?, CLENGTH?, TAMPER? and HIT?.
	ModeAll RestoreMode = iota
	// ModeAmbiNo is ModeAll minus HIT?.
	ModeAmbiNo
	// ModeAmbiOnly processes only HIT?.
	ModeAmbiOnly
)

// ParseRestoreMode parses the CLI --mode flag value.
func ParseRestoreMode(s string) (RestoreMode, error) {
	switch s {
	case "all", "":
		return ModeAll, nil
	case "ambi_no":
		return ModeAmbiNo, nil
	case "ambi_only":
		return ModeAmbiOnly, nil
	default:
		return ModeAll, fmt.Errorf("task: unknown restore mode %q", s)
	}
}

// Config is the immutable, explicit configuration for one task
// invocation (generate, verify, repair, restore, execute or
// diagnose).
type Config struct {
	Method            checksum.Method
	Redundancy        uint32
	BlockBytes        uint32
	BruteForceRepair  uint64
	BruteForceRestore uint64
	ChecksumPenalty   uint64
	RestoreMode       RestoreMode
	Widths            calibrate.Widths
	Logger            *logrus.Logger
}

// New builds a Config for the given method name and redundancy,
// calibrating the search widths for the supplied brute-force budgets.
func New(methodName string, redundancy uint32, bruteRepair, bruteRestore uint64) (Config, error) {
	m, err := checksum.ByName(methodName)
	if err != nil {
		return Config{}, err
	}
	if !isPowerOfTwo(m.DigestBits) {
		return Config{}, fmt.Errorf("task: digest width %d for method %q is not a power of two", m.DigestBits, methodName)
	}
	if !isPowerOfTwo(redundancy) || redundancy == 0 {
		return Config{}, fmt.Errorf("task: redundancy %d must be a positive power of two", redundancy)
	}

	blockBytes := (m.DigestBits / 8) * redundancy
	if !isPowerOfTwo(blockBytes) {
		return Config{}, fmt.Errorf("task: derived block size %d is not a power of two", blockBytes)
	}

	widths := calibrate.Calibrate(m.DigestBits, blockBytes, bruteRepair, bruteRestore)

	logger := logrus.New()

	return Config{
		Method:            m,
		Redundancy:        redundancy,
		BlockBytes:        blockBytes,
		BruteForceRepair:  bruteRepair,
		BruteForceRestore: bruteRestore,
		ChecksumPenalty:   1,
		RestoreMode:       ModeAll,
		Widths:            widths,
		Logger:            logger,
	}, nil
}

// DistanceWeights returns the weighting the distance package needs,
// derived from this config.
func (c Config) DistanceWeights() distance.Weights {
	return distance.Weights{Penalty: c.ChecksumPenalty, Redundancy: c.Redundancy}
}

func isPowerOfTwo(n uint32) bool {
	return n != 0 && n&(n-1) == 0
}
