package quantizer

// The synchronized mutation entry points below are the contract exposed to
// the menu/UI collaborator. Each acquires the critical section around the
// minimal field set, recomputes derived state where needed, and schedules
// the deferred persistence task. Changes take effect on the next sample.

// ToggleNote flips one semitone (0-11) in the base scale.
func (m *Module) ToggleNote(pos int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.Scale = m.cfg.Scale.Toggle(pos)
	m.recomputeRotationLocked()
	m.scheduleSaveLocked()
}

// RecallBank replaces the base scale with stored preset 0-11 and resets
// the base rotation.
func (m *Module) RecallBank(index int) error {
	if index < 0 || index >= NumScaleBanks {
		return ErrInvalidBank
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recallBankLocked(index)
	m.scheduleSaveLocked()
	return nil
}

// StoreBank saves the current base scale into preset 0-11.
func (m *Module) StoreBank(index int) error {
	if index < 0 || index >= NumScaleBanks {
		return ErrInvalidBank
	}
	m.mu.Lock()
	mask := m.cfg.Scale
	m.mu.Unlock()
	return m.storage.SaveScaleBank(index, mask)
}

// SetBaseRotation sets the base scale rotation, 0-11.
func (m *Module) SetBaseRotation(r int) {
	if r < 0 || r > MaxRotation {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.BaseRotation = r
	m.recomputeRotationLocked()
	m.scheduleSaveLocked()
}

// SetQuantizeMode selects the quantization algorithm.
func (m *Module) SetQuantizeMode(mode QuantizeMode) {
	if mode < ModeNearest || mode > ModeEqual {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.Mode = mode
	m.scheduleSaveLocked()
}

// SetLegato enables or disables legato gating.
func (m *Module) SetLegato(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.Legato = on
	m.scheduleSaveLocked()
}

// SetGateLengthIndex sets the base gate-length table index, 0-11.
func (m *Module) SetGateLengthIndex(index int) {
	if index < 0 || index > MaxGateLengthIndex {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.GateLengthIndex = index
	m.recomputeGateLocked()
	m.scheduleSaveLocked()
}

// SetTriggerDelay sets the trigger-delay setting, 0-11.
func (m *Module) SetTriggerDelay(setting int) {
	if setting < 0 || setting > MaxTriggerDelay {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.TriggerDelay = setting
	m.scheduleSaveLocked()
}

// SetTranspose sets the global and channel-B transpose, in semitones.
func (m *Module) SetTranspose(global, channelB int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.Transpose = clampTranspose(global)
	m.cfg.TransposeB = clampTranspose(channelB)
	m.scheduleSaveLocked()
}

// SetOffset sets the global and channel-B offset, in semitones.
func (m *Module) SetOffset(global, channelB int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.Offset = clampTranspose(global)
	m.cfg.OffsetB = clampTranspose(channelB)
	m.scheduleSaveLocked()
}

// SetAuxMode reassigns an auxiliary input's effect. All of that input's
// overlay contributions reset to neutral, its quantized-value memory is
// cleared, the cached rotation and gate duration are recomputed, and the
// change is persisted.
func (m *Module) SetAuxMode(aux int, mode AuxMode) {
	if aux < 0 || aux >= NumAuxInputs {
		return
	}
	if mode < AuxModeOff || mode > AuxModeScaleRecall {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.AuxModes[aux] = mode
	m.overlay.Reset(aux)
	m.aux[aux].Reset()
	m.recomputeRotationLocked()
	m.recomputeGateLocked()
	m.scheduleSaveLocked()
}

// SetKeyboard installs a manual-override candidate for a channel, or
// clears it when kb is nil. The override is ephemeral and never persisted.
func (m *Module) SetKeyboard(channel int, kb *Keyboard) {
	if channel < 0 || channel >= NumChannels {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keyboard[channel] = kb
}

// OnKeyPress is the event entry point for the front-panel collaborator.
// Note keys 0-11 toggle scale semitones, or recall the matching bank when
// shift is held; the remaining keys step through the configuration items.
// Safe to call concurrently with the sampling context.
func (m *Module) OnKeyPress(key int, shiftHeld bool) {
	switch {
	case key >= KeyNoteFirst && key <= KeyNoteLast:
		if shiftHeld {
			_ = m.RecallBank(key)
		} else {
			m.ToggleNote(key)
		}
		m.setMenuContext(contextScale)

	case key == KeyMode:
		m.SetQuantizeMode((m.Configuration().Mode + 1) % (ModeEqual + 1))
		m.setMenuContext(contextMode)

	case key == KeyLegato:
		m.SetLegato(!m.Configuration().Legato)
		m.setMenuContext(contextLegato)

	case key == KeyRotate:
		m.SetBaseRotation((m.Configuration().BaseRotation + 1) % (MaxRotation + 1))
		m.setMenuContext(contextRotate)

	case key == KeyGate:
		m.SetGateLengthIndex((m.Configuration().GateLengthIndex + 1) % (MaxGateLengthIndex + 1))
		m.setMenuContext(contextGate)
	}
}

func (m *Module) setMenuContext(ctx uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.menuContext = ctx
}

// Snapshot reports the observable runtime state for tools and tests.
type Snapshot struct {
	Pitch       [NumChannels]Note
	PitchKnown  [NumChannels]bool
	Gate        [NumChannels]bool
	FreeRunning [NumChannels]bool
	Rotated     ScaleMask
	GateSamples int
}

// Snapshot returns the current observable state.
func (m *Module) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	var s Snapshot
	for ch := range m.channels {
		s.Pitch[ch], s.PitchKnown[ch] = m.channels[ch].Output()
		s.Gate[ch] = m.channels[ch].GateOpen()
		s.FreeRunning[ch] = m.channels[ch].FreeRunning()
	}
	s.Rotated = m.rotated
	s.GateSamples = m.gateSamples
	return s
}

// clampTranspose bounds a transpose or offset setting to the valid range.
func clampTranspose(v int) int {
	if v < MinTranspose {
		return MinTranspose
	}
	if v > MaxTranspose {
		return MaxTranspose
	}
	return v
}
