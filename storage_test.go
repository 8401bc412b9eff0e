package quantizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage_VersionMarker(t *testing.T) {
	s := NewMemoryStorage()

	_, err := s.LoadConfiguration()
	assert.ErrorIs(t, err, ErrNoConfiguration)

	cfg := DefaultConfig()
	cfg.Legato = true
	require.NoError(t, s.SaveConfiguration(cfg))

	got, err := s.LoadConfiguration()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	s.Reset()
	_, err = s.LoadConfiguration()
	assert.ErrorIs(t, err, ErrNoConfiguration)
}

func TestMemoryStorage_ScaleBanks(t *testing.T) {
	s := NewMemoryStorage()

	// Unwritten banks hold the zero scale and still load.
	mask, err := s.LoadScaleBank(3)
	require.NoError(t, err)
	assert.True(t, mask.Empty())

	require.NoError(t, s.SaveScaleBank(3, ScaleMajor))
	require.NoError(t, s.SaveScaleBank(11, ScaleFifths))

	mask, err = s.LoadScaleBank(3)
	require.NoError(t, err)
	assert.Equal(t, ScaleMajor, mask)

	// Occupancy reports only the non-empty banks, bank i on the same bit
	// as semitone i.
	assert.Equal(t, NewScale(3, 11), s.ScaleBankOccupancyMask())

	// Storing an empty scale clears the occupancy bit.
	require.NoError(t, s.SaveScaleBank(3, 0))
	assert.Equal(t, NewScale(11), s.ScaleBankOccupancyMask())
}

func TestMemoryStorage_BankBounds(t *testing.T) {
	s := NewMemoryStorage()

	_, err := s.LoadScaleBank(-1)
	assert.ErrorIs(t, err, ErrInvalidBank)
	_, err = s.LoadScaleBank(NumScaleBanks)
	assert.ErrorIs(t, err, ErrInvalidBank)
	assert.ErrorIs(t, s.SaveScaleBank(12, ScaleMajor), ErrInvalidBank)
}
