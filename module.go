package quantizer

import (
	"sync"
	"sync/atomic"

	"github.com/tphakala/go-pitch-quantizer/internal/engine"
	"github.com/tphakala/go-pitch-quantizer/internal/scale"
)

// saveDelaySamples is the fixed delay between the last configuration edit
// and the deferred persistence performed by the background context.
const saveDelaySamples = 50000

// menuContextMask keeps the menu context within the low display nibble.
const menuContextMask = 0x0F

// Front-panel key codes accepted by OnKeyPress. Keys 0-11 are the twelve
// note keys; the remaining keys select configuration items.
const (
	KeyNoteFirst = 0
	KeyNoteLast  = 11
	KeyMode      = 12
	KeyLegato    = 13
	KeyRotate    = 14
	KeyGate      = 15
)

// Menu context values reported in the low nibble of IndicatorState.
const (
	contextScale  = 0
	contextMode   = 1
	contextLegato = 2
	contextRotate = 3
	contextGate   = 4
)

// Keyboard is a manual-override note selection for one channel. While set,
// the channel bypasses hysteresis and quantization; Trigger forces a
// one-shot acceptance.
type Keyboard = engine.Keyboard

// pendingSave is the scheduled-task record consumed by the background
// context: a deadline in samples plus the configuration payload captured
// at edit time.
type pendingSave struct {
	pending  bool
	deadline uint64
	cfg      Config
}

// Module is the realtime core of the quantizer: it owns the configuration,
// the cached rotated scale, the modulation overlay, and the per-channel
// and per-auxiliary runtime state, and schedules all work across the three
// execution contexts.
//
// SampleTick is the sampling context and must be invoked once per
// completed conversion. HousekeepTick is the lower-priority housekeeping
// context. BackgroundStep is the lowest-priority background context.
// Shared state is guarded by a single mutex held for the minimal field
// set, the software rendition of the firmware's disable-preemption
// critical section: the sampling context never observes a partially
// updated multi-field value.
type Module struct {
	mu sync.Mutex

	cfg     Config
	rotated ScaleMask
	overlay engine.Overlay

	// gateSamples caches the gate duration; recomputed when the
	// configured index or the auxiliary overlay changes.
	gateSamples int

	channels [NumChannels]*engine.Channel
	aux      [NumAuxInputs]engine.AuxInput
	keyboard [NumChannels]*Keyboard

	seq engine.Sequencer

	storage Storage
	periph  Peripherals

	// edges latches debounced trigger edges delivered by the I/O-polling
	// collaborator until the channel's next sample.
	edges [NumChannels]atomic.Bool

	// housekeeping guards HousekeepTick against nesting with itself.
	housekeeping atomic.Bool

	// storageBusy serializes storage operations in the background
	// context.
	storageBusy atomic.Bool

	// now counts processed samples and is the time base for deferred
	// work.
	now atomic.Uint64

	save        pendingSave
	menuContext uint8

	panel func(indicator uint16)
}

// New creates a module wired to its storage and peripheral collaborators.
// The stored configuration is loaded if present and valid; otherwise the
// module falls back to DefaultConfig and immediately persists it, since
// the fallback is authoritative.
func New(storage Storage, periph Peripherals) (*Module, error) {
	m := &Module{
		storage: storage,
		periph:  periph,
	}
	for ch := range m.channels {
		m.channels[ch] = engine.NewChannel()
	}

	cfg, err := storage.LoadConfiguration()
	if err != nil || cfg.Validate() != nil {
		cfg = DefaultConfig()
		if err := storage.SaveConfiguration(cfg); err != nil {
			return nil, err
		}
	}

	m.cfg = cfg
	m.recomputeRotationLocked()
	m.recomputeGateLocked()
	return m, nil
}

// SampleTick runs the sampling context for one completed conversion. It
// round-robins across the two audio channels and the two auxiliary inputs
// and must finish before the next sample is ready; exceeding the budget
// causes sample skew, which the sequencer recovers from by realigning to
// the slot the converter reports.
func (m *Module) SampleTick() {
	m.now.Add(1)

	id, raw := m.periph.ReadSample()
	slot := m.seq.Advance()
	if id != slot {
		slot = id & (engine.NumSlots - 1)
		m.seq.Resync(slot)
	}

	if engine.IsAux(slot) {
		m.processAux(engine.AuxIndex(slot), raw)
		return
	}
	m.processChannel(slot, raw)
}

// processAux runs one auxiliary input for one sample.
func (m *Module) processAux(aux, raw int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mode := m.cfg.AuxModes[aux]
	if mode == AuxModeOff {
		return
	}

	// Gate-length modulation tracks the voltage continuously, not only
	// on quantized-value changes.
	if mode == AuxModeGateLength {
		m.overlay.SetGateModulation(aux, raw)
		m.recomputeGateLocked()
	}

	value, changed := m.aux[aux].Process(raw)
	if !changed || mode == AuxModeGateLength {
		return
	}

	eff := m.overlay.Apply(aux, mode, value)
	if eff.RecallBank >= 0 {
		m.recallBankLocked(eff.RecallBank)
	}
	if eff.RecomputeRotation {
		m.recomputeRotationLocked()
	}
}

// processChannel runs one audio channel for one sample and drives the
// pitch and gate outputs.
func (m *Module) processChannel(ch, raw int) {
	m.mu.Lock()

	if m.edges[ch].CompareAndSwap(true, false) {
		m.channels[ch].NoteTriggerEdge(m.cfg.TriggerDelay)
	}

	params := engine.ChannelParams{
		Mask:        m.rotated,
		Mode:        m.cfg.Mode,
		Legato:      m.cfg.Legato,
		Transpose:   m.cfg.Transpose + m.overlay.Transpose(ch),
		Offset:      m.cfg.Offset + m.overlay.Offset(ch),
		GateSamples: m.gateSamples,
	}
	if ch == engine.ChannelB {
		params.Transpose += m.cfg.TransposeB
		params.Offset += m.cfg.OffsetB
	}

	kb := m.keyboard[ch]
	res := m.channels[ch].Process(raw, params, kb)
	if kb != nil {
		// The manual trigger is a one-shot flag.
		kb.Trigger = false
	}

	m.mu.Unlock()

	if res.PitchValid {
		m.periph.WritePitch(ch, res.Pitch)
	}
	if res.GateChanged {
		m.periph.SetGate(ch, res.Gate)
	}
}

// HousekeepTick runs the housekeeping context: front-panel polling and
// indicator refresh via the registered collaborator. Re-entry is guarded
// so housekeeping never nests with itself, while the sampling context can
// always interrupt it.
func (m *Module) HousekeepTick() {
	if !m.housekeeping.CompareAndSwap(false, true) {
		return
	}
	defer m.housekeeping.Store(false)

	m.mu.Lock()
	panel := m.panel
	m.mu.Unlock()

	if panel != nil {
		panel(m.IndicatorState())
	}
}

// BackgroundStep runs the background context: it commits the configuration
// to storage once the scheduled deadline has passed. If the storage busy
// flag is held, the pending request simply waits for the flag to clear;
// nothing here ever blocks the sampling or housekeeping contexts.
func (m *Module) BackgroundStep() {
	m.mu.Lock()
	if !m.save.pending || m.now.Load() < m.save.deadline {
		m.mu.Unlock()
		return
	}
	if !m.storageBusy.CompareAndSwap(false, true) {
		m.mu.Unlock()
		return
	}
	cfg := m.save.cfg
	m.save.pending = false
	m.mu.Unlock()

	// Outside the critical section: storage latency must not stall the
	// sampling context.
	_ = m.storage.SaveConfiguration(cfg)
	m.storageBusy.Store(false)
}

// OnTriggerEdge is the entry point for the I/O-polling collaborator,
// delivered once per debounced trigger edge. Safe to call concurrently
// with the sampling context.
func (m *Module) OnTriggerEdge(channel int) {
	if channel < 0 || channel >= NumChannels {
		return
	}
	m.edges[channel].Store(true)
}

// SetPanelHandler registers the front-panel collaborator invoked from the
// housekeeping context with the current indicator state.
func (m *Module) SetPanelHandler(fn func(indicator uint16)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panel = fn
}

// IndicatorState returns the 16-bit front-panel display mask: the rotated
// scale in the top 12 bits and the active menu context in the low nibble.
// Pure query, safe to call concurrently with the sampling context.
func (m *Module) IndicatorState() uint16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return uint16(m.rotated) | uint16(m.menuContext&menuContextMask)
}

// Configuration returns a copy of the current configuration.
func (m *Module) Configuration() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg
}

// recomputeRotationLocked refreshes the cached rotated scale from the base
// scale, base rotation, and auxiliary rotation. Must hold mu.
func (m *Module) recomputeRotationLocked() {
	m.rotated = scale.Rotated(m.cfg.Scale, m.cfg.BaseRotation, m.overlay.Rotation())
}

// recomputeGateLocked refreshes the cached gate duration. Must hold mu.
func (m *Module) recomputeGateLocked() {
	m.gateSamples = engine.GateSamples(m.cfg.GateLengthIndex, &m.overlay)
}

// recallBankLocked replaces the base scale with a stored preset, resets
// the base rotation, and recomputes the rotated scale. Empty banks load
// like any other. Must hold mu.
func (m *Module) recallBankLocked(index int) {
	mask, err := m.storage.LoadScaleBank(index)
	if err != nil {
		return
	}
	m.cfg.Scale = mask
	m.cfg.BaseRotation = 0
	m.recomputeRotationLocked()
}

// scheduleSaveLocked records the deferred-persistence task with the
// current configuration as payload. Must hold mu.
func (m *Module) scheduleSaveLocked() {
	m.save = pendingSave{
		pending:  true,
		deadline: m.now.Load() + saveDelaySamples,
		cfg:      m.cfg,
	}
}
