package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/coldcellar/bitguard/internal/bitguard/commands"
	"github.com/coldcellar/bitguard/internal/bitguard/sidecar"
	"github.com/coldcellar/bitguard/internal/bitguard/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInstructionFile(t *testing.T, path string, h sidecar.Header, recs []sidecar.InstructionRecord) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, sidecar.WriteHeader(f, h))
	for _, rec := range recs {
		require.NoError(t, sidecar.WriteInstruction(f, rec))
	}
}

func TestExecuteAppliesHitRecordsOnly(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(dataPath, []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 0644))

	h := sidecar.Header{MethodName: "md5_32", ChecksumBits: 32, BlockBytes: 4}
	instrPath := filepath.Join(dir, "instr.bin")
	writeInstructionFile(t, instrPath, h, []sidecar.InstructionRecord{
		{Kind: sidecar.KindHitSure, BlockIndex: 0, BlockLen: 4, Digest: []byte{0, 0, 0, 0}, Block: []byte{0xAA, 0xBB, 0xCC, 0xDD}},
		{Kind: sidecar.KindNoHits, BlockIndex: 1, BlockLen: 4, Digest: []byte{0, 0, 0, 0}, Block: []byte{0x11, 0x22, 0x33, 0x44}},
	})

	cfg := task.Config{}
	summary, err := commands.Execute(cfg, dataPath, instrPath)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.OK)
	assert.Equal(t, 2, summary.Total)

	got, err := os.ReadFile(dataPath)
	require.NoError(t, err)
	// block 0 overwritten, block 1 (NOHITS) left untouched.
	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC, 0xDD, 0x00, 0x00, 0x00, 0x00}, got)
}

// Applying an instruction file twice yields the same
// final bytes as applying it once.
func TestExecuteIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(dataPath, []byte{0x00, 0x00, 0x00, 0x00}, 0644))

	h := sidecar.Header{MethodName: "md5_32", ChecksumBits: 32, BlockBytes: 4}
	instrPath := filepath.Join(dir, "instr.bin")
	writeInstructionFile(t, instrPath, h, []sidecar.InstructionRecord{
		{Kind: sidecar.KindHitAmbi, BlockIndex: 0, BlockLen: 4, Digest: []byte{0, 0, 0, 0}, Block: []byte{0x99, 0x88, 0x77, 0x66}},
	})

	cfg := task.Config{}
	_, err := commands.Execute(cfg, dataPath, instrPath)
	require.NoError(t, err)
	first, err := os.ReadFile(dataPath)
	require.NoError(t, err)

	_, err = commands.Execute(cfg, dataPath, instrPath)
	require.NoError(t, err)
	second, err := os.ReadFile(dataPath)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
